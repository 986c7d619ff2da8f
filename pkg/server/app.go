package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	domrepo "SignalFuse/internal/domain/repository"
	pkgch "SignalFuse/pkg/clickhouse"
	"SignalFuse/pkg/config"
	xhttp "SignalFuse/pkg/http"
	pkgkafka "SignalFuse/pkg/kafka"
	applogger "SignalFuse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	volFeed     domrepo.VolumeFeed
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	publisher   domrepo.Publisher
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	volFeed domrepo.VolumeFeed,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	publisher domrepo.Publisher,
	httpHandler xhttp.Handler,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		volFeed:     volFeed,
		consumer:    consumer,
		kh:          kh,
		chClient:    chClient,
		publisher:   publisher,
		httpHandler: httpHandler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.logger
	if l == nil {
		var err error
		l, err = applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
		if err != nil {
			log.Printf("failed to create logger: %v", err)
			return err
		}
	}

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start volume feed if configured
	if a.volFeed != nil && a.cfg.VolumeFeed.WebSocketURL != "" {
		if err := a.volFeed.Connect(ctx); err != nil {
			l.Warn("volume feed connect error, estimates require explicit volume", applogger.Error(err))
		} else if err := a.volFeed.Subscribe(ctx); err != nil {
			l.Warn("volume feed subscribe error", applogger.Error(err))
		} else {
			errs := a.volFeed.Run(ctx)
			go func() {
				for err := range errs {
					l.Error("volume feed error", applogger.Error(err))
				}
			}()
			l.Info("volume feed started", applogger.Strings("symbols", a.cfg.VolumeFeed.Symbols))
		}
	}

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx, l)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context, l *applogger.Logger) error {
	l.Info("shutting down...")

	// Stop the market data stream first so estimates stop mutating state
	if a.volFeed != nil {
		if err := a.volFeed.Close(); err != nil {
			l.Warn("volume feed close error", applogger.Error(err))
		}
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop consumer before closing the stores it writes to
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			l.Warn("publisher close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
