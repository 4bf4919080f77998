package mq

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"dolapkapak/internal/common/logger"
)

var (
	ErrRequeue = errors.New("requeue")     // nack(requeue=true)
	ErrDLQ     = errors.New("dead_letter") // nack(requeue=false)
)

type Handler func(ctx context.Context, d amqp.Delivery) error

// Serve settles every delivery by the handler's verdict until ctx ends or
// the broker closes the channel. Errors other than ErrDLQ are requeued.
func Serve(ctx context.Context, deliveries <-chan amqp.Delivery, handle Handler, lg *logger.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			settle(ctx, d, handle, lg)
		}
	}
}

func settle(ctx context.Context, d amqp.Delivery, handle Handler, lg *logger.Logger) {
	err := handle(ctx, d)
	switch {
	case err == nil:
		if aerr := d.Ack(false); aerr != nil {
			lg.Error("ack_failed", aerr, map[string]any{"delivery_tag": d.DeliveryTag})
		}
	case errors.Is(err, ErrDLQ):
		lg.Warn("message_dead_lettered", map[string]any{"delivery_tag": d.DeliveryTag, "reason": err.Error()})
		_ = d.Nack(false, false)
	default:
		lg.Error("message_requeued", err, map[string]any{"delivery_tag": d.DeliveryTag})
		_ = d.Nack(false, true)
	}
}
