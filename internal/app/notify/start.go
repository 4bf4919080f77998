package notify

import (
	"context"

	"dolapkapak/internal/common/config"
	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/common/mq"
	"dolapkapak/internal/domain"
)

// Run consumes order notifications until ctx ends.
func Run(ctx context.Context, cfg config.Config, lg *logger.Logger) error {
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
	deliveries, err := client.Consume(domain.NotificationsQueue, config.ModeNotification, 1)
	if err != nil {
		return err
	}

	lg.Info("service_started", map[string]any{"queue": domain.NotificationsQueue})
	return mq.Serve(ctx, deliveries, NewNotifyService(cfg.Admin.Email, lg).Handle, lg)
}
