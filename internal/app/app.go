package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atvirokodosprendimai/estacionamento/internal/adapters/events"
	"github.com/atvirokodosprendimai/estacionamento/internal/adapters/httpapi"
	sqliteadapter "github.com/atvirokodosprendimai/estacionamento/internal/adapters/sqlite"
	"github.com/atvirokodosprendimai/estacionamento/internal/adapters/sqlite/gormsqlite"
	"github.com/atvirokodosprendimai/estacionamento/internal/core/ports"
	"github.com/atvirokodosprendimai/estacionamento/internal/core/usecase"
	"github.com/atvirokodosprendimai/estacionamento/migrations"
)

const (
	defaultDispatchInterval = 2 * time.Second
	dispatchBatchSize       = 100
	webhookTimeout          = 10 * time.Second
)

type Config struct {
	Addr             string
	DBPath           string
	CORSMaxAge       int
	WebhookURL       string
	WebhookSecret    string
	DispatchInterval time.Duration
}

type resourceCloser struct {
	closers []io.Closer
}

func (r resourceCloser) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewServer opens the database, applies migrations, starts the outbox
// dispatcher and returns an unstarted HTTP server. The returned closer stops
// the dispatcher before closing the database.
func NewServer(ctx context.Context, cfg Config, logger *zap.Logger) (*http.Server, io.Closer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := gormsqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}

	writeSQLDB, err := db.WriteSQLDB()
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("resolve writer sql db: %w", err)
	}

	migrateCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := migrations.Up(migrateCtx, writeSQLDB); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	vagaService := usecase.NewVagaService(sqliteadapter.NewVagaRepository(db))

	interval := cfg.DispatchInterval
	if interval <= 0 {
		interval = defaultDispatchInterval
	}
	dispatcher := usecase.NewOutboxDispatcher(
		sqliteadapter.NewOutboxRepository(db),
		newPublisher(cfg, logger),
		logger.Named("outbox"),
		interval,
		dispatchBatchSize,
	)
	dispatcher.Start(context.Background())

	handler := httpapi.NewHandler(
		vagaService,
		httpapi.NewVagaMapper(),
		httpapi.WithLogger(logger.Named("http")),
		httpapi.WithCORSMaxAge(cfg.CORSMaxAge),
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return server, resourceCloser{closers: []io.Closer{dispatcher, db}}, nil
}

func newPublisher(cfg Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.WebhookURL != "" {
		logger.Info("publishing vaga events to webhook", zap.String("url", cfg.WebhookURL))
		return events.NewWebhookPublisher(cfg.WebhookURL, cfg.WebhookSecret, webhookTimeout)
	}
	return events.NewLogPublisher(logger.Named("events"))
}
