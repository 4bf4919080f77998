package recorder

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"dolapkapak/internal/common/config"
	"dolapkapak/internal/common/db"
	"dolapkapak/internal/common/httpx"
	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/common/mq"
	"dolapkapak/internal/domain"
	"dolapkapak/internal/repository"
)

const prefetch = 10

// Run consumes confirmed orders into the ledger and serves ledger lookups
// until ctx ends.
func Run(ctx context.Context, cfg config.Config, lg *logger.Logger) error {
	conn, err := db.Connect(ctx, db.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	repo := repository.NewOrdersPG(conn.Pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	client, err := mq.Dial(ctx, mq.Config{
		Host:     cfg.RabbitMQ.Host,
		Port:     cfg.RabbitMQ.Port,
		User:     cfg.RabbitMQ.User,
		Password: cfg.RabbitMQ.Password,
		VHost:    cfg.RabbitMQ.VHost,
	})
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.DeclareAll(); err != nil {
		return err
	}
	deliveries, err := client.Consume(domain.RecorderQueue, config.ModeRecorder, prefetch)
	if err != nil {
		return err
	}

	svc := NewRecorderService(repo, lg)
	h := NewLedgerHandler(repo, map[string]Pinger{"postgres": conn, "rabbitmq": client}, lg)
	addr := ":" + strconv.Itoa(cfg.HTTP.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return mq.Serve(gctx, deliveries, svc.Handle, lg) })
	g.Go(func() error { return httpx.New(addr, Router(h)).Run(gctx) })

	lg.Info("service_started", map[string]any{"queue": domain.RecorderQueue, "prefetch": prefetch, "port": cfg.HTTP.Port})
	return g.Wait()
}
