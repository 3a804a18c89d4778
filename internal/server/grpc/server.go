// Package grpc runs the gRPC health service. Besides the overall process
// status it reports the reachability of Odoo under the "odoo" service name,
// refreshed by a periodic common.version probe.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/docportal/internal/logging"
	"github.com/dmitrijs2005/docportal/internal/server/odoo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// OdooService is the health service name tracking the Odoo backend.
const OdooService = "odoo"

type VersionProber interface {
	Version(ctx context.Context) (odoo.VersionInfo, error)
}

type HealthServer struct {
	address  string
	prober   VersionProber
	interval time.Duration
	logger   logging.Logger
	health   *health.Server
}

func NewHealthServer(a string, l logging.Logger, p VersionProber, interval time.Duration) (*HealthServer, error) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	hs := health.NewServer()
	hs.SetServingStatus(OdooService, healthpb.HealthCheckResponse_UNKNOWN)

	return &HealthServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		prober:   p,
		interval: interval,
		health:   hs,
	}, nil
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	// registers service
	healthpb.RegisterHealthServer(srv, s.health)

	go s.probeLoop(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

func (s *HealthServer) probeLoop(ctx context.Context) {
	if s.prober == nil {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.probe(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *HealthServer) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	v, err := s.prober.Version(ctx)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn(ctx, "odoo probe failed", "error", err)
	} else {
		s.logger.Debug(ctx, "odoo probe", "server_version", v.ServerVersion)
	}
	s.health.SetServingStatus(OdooService, status)
}
