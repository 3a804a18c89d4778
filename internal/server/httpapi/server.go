// Package httpapi is the JSON surface of the portal: login, lookups,
// uploads and the operational endpoints, served by gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/docportal/internal/logging"
	"github.com/dmitrijs2005/docportal/internal/server/documents"
	"github.com/dmitrijs2005/docportal/internal/server/journal"
	"github.com/dmitrijs2005/docportal/internal/server/odoo"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	defaultBodyLimit = 10 << 20
	shutdownTimeout  = 10 * time.Second
)

type CredentialChecker interface {
	Check(username, password string) bool
}

type SessionTokens interface {
	Issue(username string) (string, error)
	Verify(token string) (string, error)
}

type Directory interface {
	ListContacts(ctx context.Context) ([]odoo.Partner, error)
	ListFolders(ctx context.Context) ([]odoo.Folder, error)
}

type Uploader interface {
	Upload(ctx context.Context, req documents.UploadRequest, requestID string) (*documents.UploadResult, error)
}

type UploadLog interface {
	Recent(ctx context.Context, limit int) ([]*journal.Record, error)
}

type LoginObserver interface {
	ObserveLogin(ok bool)
}

// Deps are the collaborators of the API. Tokens, Journal, Logins and
// Metrics may be nil.
type Deps struct {
	Credentials CredentialChecker
	Tokens      SessionTokens
	Directory   Directory
	Uploader    Uploader
	Journal     UploadLog
	Logins      LoginObserver
	Metrics     http.Handler
	Logger      logging.Logger
}

type Options struct {
	MaxUploadBytes int64
	RequireSession bool
	EnableCORS     bool
	Debug          bool
}

type Server struct {
	address    string
	deps       Deps
	opts       Options
	logger     logging.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

func NewServer(address string, deps Deps, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 50 << 20
	}
	l := deps.Logger
	if l == nil {
		l = logging.Nop{}
	}

	s := &Server{
		address: address,
		deps:    deps,
		opts:    opts,
		logger:  l.With("module", "http_server"),
		engine:  gin.New(),
	}

	s.engine.Use(requestID(), s.requestLogger(), gin.Recovery())
	if opts.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
		corsConfig.ExposeHeaders = []string{"X-Request-ID"}
		s.engine.Use(cors.New(corsConfig))
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	r := s.engine

	r.Any("/login", only(http.MethodPost, "message"), limitBody(defaultBodyLimit), s.handleLogin)
	r.Any("/contacts", only(http.MethodGet, "error"), s.requireSession(), s.handleContacts)
	r.Any("/folders", only(http.MethodGet, "error"), s.requireSession(), s.handleFolders)
	r.Any("/upload", only(http.MethodPost, "error"), s.requireSession(), limitBody(s.opts.MaxUploadBytes), s.handleUpload)
	r.Any("/uploads", only(http.MethodGet, "error"), s.requireSession(), s.handleUploads)

	r.GET("/healthz", s.handleHealth)
	if s.deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.deps.Metrics))
	}
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := s.httpServer.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
