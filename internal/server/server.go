// Package server exposes diagnosis, token counting and refinement over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sant0-9/sharpen/internal/config"
	"github.com/sant0-9/sharpen/internal/refine"
	"github.com/sant0-9/sharpen/internal/style"
	"github.com/sant0-9/sharpen/internal/tokens"
	"github.com/sirupsen/logrus"
)

const (
	ReadTimeout     = 30 * time.Second
	WriteTimeout    = 90 * time.Second
	shutdownTimeout = 10 * time.Second
	maxBodyBytes    = 1 << 20
)

// RefinerFactory builds a refiner for the configured provider. It is called
// per request so credential changes apply without a restart.
type RefinerFactory func() (*refine.Refiner, error)

type Options struct {
	Config     *config.Config
	Counter    *tokens.Counter
	NewRefiner RefinerFactory
	Styles     *style.Index
	Logger     logrus.FieldLogger
}

type Server struct {
	cfg        *config.Config
	counter    *tokens.Counter
	newRefiner RefinerFactory
	styles     *style.Index
	logger     logrus.FieldLogger
	router     *chi.Mux
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Counter == nil {
		opts.Counter = tokens.NewCounter(nil, opts.Logger)
	}

	s := &Server{
		cfg:        opts.Config,
		counter:    opts.Counter,
		newRefiner: opts.NewRefiner,
		styles:     opts.Styles,
		logger:     opts.Logger,
	}

	router := chi.NewRouter()
	router.Use(Recovery(s.logger))
	router.Use(Logger(s.logger))

	router.Get("/health", s.health)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Post("/diagnose", s.diagnose)
		r.Post("/tokens", s.countTokens)
		r.Post("/refine", s.refine)
		r.Get("/providers", s.providers)
		r.Get("/styles", s.listStyles)
	})

	s.router = router
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
