package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/docportal/internal/logging"
	"github.com/dmitrijs2005/docportal/internal/server/odoo"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeProber struct {
	err error
}

func (f fakeProber) Version(context.Context) (odoo.VersionInfo, error) {
	if f.err != nil {
		return odoo.VersionInfo{}, f.err
	}
	return odoo.VersionInfo{ServerVersion: "17.0"}, nil
}

func checkStatus(t *testing.T, s *HealthServer, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("Check(%q) error: %v", service, err)
	}
	return resp.GetStatus()
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewHealthServer("127.0.0.1:0", nopLogger{}, fakeProber{}, time.Hour)
	if err != nil {
		t.Fatalf("NewHealthServer error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv, err := NewHealthServer("127.0.0.1:99999", nopLogger{}, nil, 0)
	if err != nil {
		t.Fatalf("NewHealthServer error (constructor should not fail here): %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func TestProbe_SetsOdooStatus(t *testing.T) {
	t.Parallel()

	srv, _ := NewHealthServer("", nopLogger{}, fakeProber{}, time.Second)
	if got := checkStatus(t, srv, OdooService); got != healthpb.HealthCheckResponse_UNKNOWN {
		t.Fatalf("initial status = %v, want UNKNOWN", got)
	}

	srv.probe(context.Background())
	if got := checkStatus(t, srv, OdooService); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", got)
	}

	srv.prober = fakeProber{err: errors.New("connection refused")}
	srv.probe(context.Background())
	if got := checkStatus(t, srv, OdooService); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status = %v, want NOT_SERVING", got)
	}

	if got := checkStatus(t, srv, ""); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("overall status = %v, want SERVING", got)
	}
}
