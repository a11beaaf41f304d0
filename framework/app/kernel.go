// Package app bootstraps the validation service: it wires configuration,
// logging, the validator, rule sets and the router, and runs the HTTP
// server until its context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	controllers "github.com/km-arc/go-validator/app"
	"github.com/km-arc/go-validator/framework/config"
	"github.com/km-arc/go-validator/framework/logger"
	"github.com/km-arc/go-validator/framework/routing"
	"github.com/km-arc/go-validator/framework/ruleset"
	"github.com/km-arc/go-validator/framework/validation"
)

var (
	// ErrBoot is returned when the application cannot be assembled.
	ErrBoot = errors.New("application boot failed")

	// ErrServe is returned when the HTTP server stops unexpectedly.
	ErrServe = errors.New("http server failed")
)

// Application is the top-level service object.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Validator *validation.Validator
	RuleSets  *ruleset.Sets
	Router    *routing.Router
}

// Option customizes New.
type Option func(*Application)

// WithLogger replaces the logger built from configuration.
func WithLogger(l *slog.Logger) Option {
	return func(a *Application) {
		if l != nil {
			a.Logger = l
		}
	}
}

// WithRuleSets supplies rule sets directly instead of loading
// VALIDATION_RULES_FILE. They are compiled during New.
func WithRuleSets(s *ruleset.Sets) Option {
	return func(a *Application) { a.RuleSets = s }
}

// New assembles the application. Rule sets are compiled at boot, so a rule
// set naming an unknown criterion stops startup.
//
//	cfg := config.MustLoad()
//	application, err := app.New(cfg)
//	if err != nil { ... }
//	err = application.Run(ctx)
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrBoot)
	}
	a := &Application{Config: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = logger.New(
			logger.WithLevel(cfg.SlogLevel()),
			logger.WithFormat(logger.Format(cfg.Log.Format)),
			logger.WithAttr(slog.String("app", cfg.App.Name), slog.String("env", cfg.App.Env)),
		)
	}

	a.Validator = validation.New(
		validation.WithRegistry(validation.NewRegistry(validation.WithLengthMode(cfg.LengthMode()))),
		validation.WithLogger(a.Logger.With(logger.Component("validation"))),
	)

	if a.RuleSets == nil && cfg.Validation.RulesFile != "" {
		sets, err := ruleset.Load(cfg.Validation.RulesFile)
		if err != nil {
			return nil, errors.Join(ErrBoot, err)
		}
		a.RuleSets = sets
	}
	if a.RuleSets != nil {
		if err := a.RuleSets.Compile(a.Validator); err != nil {
			return nil, errors.Join(ErrBoot, err)
		}
		a.Logger.Info("rule sets loaded", slog.Int("count", a.RuleSets.Len()))
	}

	a.Router = routing.New(a.Logger)
	controllers.NewController(a.Validator, a.RuleSets, a.Logger).Routes(a.Router)

	return a, nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Config.Addr())
	if err != nil {
		return errors.Join(ErrServe, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
// within HTTP_SHUTDOWN_TIMEOUT.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Router,
		ReadTimeout:       a.Config.HTTP.ReadTimeout,
		ReadHeaderTimeout: a.Config.HTTP.ReadTimeout,
		ErrorLog:          slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	a.Logger.Info("server started",
		slog.String("addr", ln.Addr().String()),
		slog.Bool("debug", a.IsDebug()))

	var serveErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("graceful shutdown failed", logger.Error(err))
			_ = srv.Close()
		}
		serveErr = <-errCh
	case serveErr = <-errCh:
	}

	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return errors.Join(ErrServe, serveErr)
	}
	a.Logger.Info("server stopped")
	return nil
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Config.IsLocal() }
func (a *Application) IsProduction() bool  { return a.Config.IsProduction() }
func (a *Application) IsTesting() bool     { return a.Config.IsTesting() }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
