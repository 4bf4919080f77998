package ordering

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"dolapkapak/internal/common/config"
	"dolapkapak/internal/common/httpx"
	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/common/mq"
	"dolapkapak/internal/view"
	"dolapkapak/internal/workflow"
)

// Run serves the ordering API until ctx ends.
func Run(ctx context.Context, cfg config.Config, lg *logger.Logger) error {
	calc, err := cfg.Pricing.Calculator()
	if err != nil {
		return err
	}

	// with a broker the back office runs as separate services
	var recorders []OrderRecorder
	if !cfg.RabbitMQ.PublishOrders {
		recorders = append(recorders, NewLogRecorder(lg, cfg.Admin.Email))
	} else {
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
			return fmt.Errorf("declare topology: %w", err)
		}
		recorders = append(recorders, NewPublishRecorder(client, cfg.Admin.Email))
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host})
	}

	machine := workflow.New(workflow.Config{
		Calculator:        calc,
		BootDelay:         cfg.Timers.Boot,
		ConfirmationDelay: cfg.Timers.Confirmation,
		Logger:            lg,
	})
	rt := NewRuntime(RuntimeConfig{
		Machine:   machine,
		Acquirer:  FixtureAcquirer{Delay: cfg.Timers.Login, Demo: cfg.Seeding.Demo},
		Recorders: recorders,
		Logger:    lg,
	})
	h := NewOrderingHandler(rt, view.NewRenderer(nil), lg)

	addr := ":" + strconv.Itoa(cfg.HTTP.Port)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rt.Run(gctx) })
	g.Go(func() error { return httpx.New(addr, Router(h)).Run(gctx) })

	lg.Info("service_started", map[string]any{"port": cfg.HTTP.Port, "publish_orders": cfg.RabbitMQ.PublishOrders})
	err = g.Wait()
	rt.Wait()
	return err
}
