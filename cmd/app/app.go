// Package main is the entry point for the EUR/HUF currency converter.
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"currencyapp/internal/config"
	"currencyapp/internal/console"
	"currencyapp/internal/provider"
	"currencyapp/internal/repository"
	"currencyapp/internal/service"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg     *config.Config
	logger  *zap.SugaredLogger
	console *console.Console
}

// NewApp wires the rate provider, converter and console.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger, in io.Reader, out io.Writer) *App {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	conversionService := service.NewConversionService(
		newRateProvider(cfg, logger),
		service.NewConverter(),
		logger,
	)
	app.console = console.New(conversionService, in, out, logger, consoleOptions(out, cfg.Console))

	return app
}

func newRateProvider(cfg *config.Config, logger *zap.SugaredLogger) provider.RatesProvider {
	remote := provider.NewCurrencyAPIProvider(
		cfg.API.BaseURL,
		cfg.API.Key,
		cfg.API.BaseCurrency,
		cfg.API.Output,
		cfg.API.TimeoutSec,
	)
	repo := repository.NewFileSnapshotRepository(cfg.Cache.File)
	return provider.NewCachedRatesProvider(remote, repo, cfg.Cache.Duration(), logger)
}

// consoleOptions enables colour and sizes the footer when out is a terminal.
func consoleOptions(out io.Writer, cfg config.ConsoleConfig) console.Options {
	opts := console.Options{ShowRate: cfg.ShowRate}
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return opts
	}
	opts.Color = true
	if width, _, err := term.GetSize(int(f.Fd())); err == nil {
		opts.Width = width
	}
	return opts
}

// Run runs the console until the user exits or the context is canceled.
// Cancellation by signal is a normal shutdown.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if err := app.console.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Infow("Shutting down")
		return nil
	})

	return g.Wait()
}
