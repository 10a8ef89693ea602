// Package server exposes document lookups over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/danmuck/stellartoml/internal/config"
	"github.com/danmuck/stellartoml/internal/observability"
	"github.com/danmuck/stellartoml/internal/resolve"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const nodeName = "tomlctl"

// Server owns the HTTP router and the Resolver it serves from.
type Server struct {
	cfg      config.Config
	resolver *resolve.Resolver
	logger   zerolog.Logger
	router   *gin.Engine
	started  time.Time
}

// New builds a Server for cfg. A nil resolver is built from cfg.
func New(cfg config.Config, resolver *resolve.Resolver, logger zerolog.Logger) *Server {
	if resolver == nil {
		resolver = NewResolver(cfg, logger)
	}
	s := &Server{
		cfg:      cfg,
		resolver: resolver,
		logger:   logger,
		router:   gin.New(),
		started:  time.Now(),
	}
	s.router.Use(gin.Recovery())
	s.router.Use(observability.RequestLogger(logger))
	s.router.Use(observability.RequestMetricsMiddleware(nodeName))
	if len(cfg.CorsOrigins) > 0 {
		s.router.Use(cors.New(corsConfig(cfg.CorsOrigins)))
	}
	_ = s.router.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	s.registerRoutes()
	return s
}

func corsConfig(origins []string) cors.Config {
	out := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		out.AllowAllOrigins = true
	} else {
		out.AllowOrigins = origins
	}
	return out
}

// NewResolver builds the Resolver described by cfg, recording metrics.
func NewResolver(cfg config.Config, logger zerolog.Logger) *resolve.Resolver {
	fetcher := resolve.NewHTTPFetcher(&http.Client{Timeout: cfg.Timeout})
	fetcher.UserAgent = cfg.UserAgent
	return resolve.New(
		resolve.WithFetcher(fetcher),
		resolve.WithParser(cfg.ParserImpl()),
		resolve.WithPolicy(cfg.BindPolicy()),
		resolve.WithMaxBodyBytes(cfg.MaxBodyBytes),
		resolve.WithErrorExcerptBytes(cfg.ErrorExcerptBytes),
		resolve.WithTimeout(cfg.Timeout),
		resolve.WithLogger(logger),
		resolve.WithObserver(observability.RecordResolve),
	)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	observability.RegisterMetrics()
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.ListenAddr).Msg("server.listen")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info().Msg("server.shutdown")
		return srv.Shutdown(shutdownCtx)
	}
}
