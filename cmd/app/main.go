package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/atvirokodosprendimai/estacionamento/internal/app"
	"github.com/atvirokodosprendimai/estacionamento/internal/logger"
)

func main() {
	cmd := &cli.Command{
		Name:  "estacionamento",
		Usage: "Parking spot (vaga) HTTP API backed by SQLite",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   ":8080",
				Sources: cli.EnvVars("ESTACIONAMENTO_ADDR"),
				Usage:   "HTTP listen address",
			},
			&cli.StringFlag{
				Name:    "db-path",
				Value:   "./estacionamento.sqlite",
				Sources: cli.EnvVars("ESTACIONAMENTO_DB_PATH"),
				Usage:   "SQLite file path",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars("ESTACIONAMENTO_LOG_LEVEL"),
				Usage:   "Log level (debug, info, warn, error)",
			},
			&cli.IntFlag{
				Name:    "cors-max-age",
				Value:   3600,
				Sources: cli.EnvVars("ESTACIONAMENTO_CORS_MAX_AGE"),
				Usage:   "Seconds browsers may cache CORS preflight responses",
			},
			&cli.StringFlag{
				Name:    "webhook-url",
				Sources: cli.EnvVars("ESTACIONAMENTO_WEBHOOK_URL"),
				Usage:   "Outbox event webhook target URL (events are logged when empty)",
			},
			&cli.StringFlag{
				Name:    "webhook-secret",
				Sources: cli.EnvVars("ESTACIONAMENTO_WEBHOOK_SECRET"),
				Usage:   "HMAC-SHA256 signing secret for outbound webhook requests",
			},
			&cli.DurationFlag{
				Name:    "dispatch-interval",
				Value:   2 * time.Second,
				Sources: cli.EnvVars("ESTACIONAMENTO_DISPATCH_INTERVAL"),
				Usage:   "How often the outbox dispatcher polls for pending events",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	log, err := logger.New(c.String("log-level"))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg := app.Config{
		Addr:             c.String("addr"),
		DBPath:           c.String("db-path"),
		CORSMaxAge:       int(c.Int("cors-max-age")),
		WebhookURL:       c.String("webhook-url"),
		WebhookSecret:    c.String("webhook-secret"),
		DispatchInterval: c.Duration("dispatch-interval"),
	}

	server, closer, err := app.NewServer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	defer func() {
		if closeErr := closer.Close(); closeErr != nil {
			log.Error("close resources", zap.Error(closeErr))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("db_path", cfg.DBPath))
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		return shutdown(server)
	case sig := <-sigCh:
		log.Info("received signal", zap.String("signal", sig.String()))
		return shutdown(server)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
