// Package recorder keeps the order ledger: it consumes confirmed orders and
// writes them to Postgres, standing in for the sheet and drive archive.
package recorder

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/common/mq"
	"dolapkapak/internal/domain"
	"dolapkapak/internal/repository"
)

type RecorderService struct {
	repo repository.OrdersRepositoryInterface
	lg   *logger.Logger
}

func NewRecorderService(repo repository.OrdersRepositoryInterface, lg *logger.Logger) *RecorderService {
	return &RecorderService{repo: repo, lg: lg}
}

func (s *RecorderService) Handle(ctx context.Context, d amqp.Delivery) error {
	var msg domain.OrderConfirmedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		return fmt.Errorf("%w: decode: %v", mq.ErrDLQ, err)
	}
	o := msg.Order
	if o.OrderID == "" || o.TrackingNumber == "" || len(o.Items) == 0 {
		return fmt.Errorf("%w: incomplete order %q", mq.ErrDLQ, o.OrderID)
	}

	inserted, err := s.repo.InsertOrder(ctx, o)
	if err != nil {
		return fmt.Errorf("%w: %v", mq.ErrRequeue, err)
	}
	if !inserted {
		s.lg.Debug("order_record_duplicate", map[string]any{"order_id": o.OrderID})
		return nil
	}

	s.lg.Info("sheet_record_written", map[string]any{
		"order_id":        o.OrderID,
		"tracking_number": o.TrackingNumber,
		"owner_email":     o.OwnerEmail,
		"items":           len(o.Items),
		"price":           o.Price.String(),
	})
	if o.File != nil {
		s.lg.Info("drive_upload_simulated", map[string]any{"order_id": o.OrderID, "file": o.File.Name})
	}
	return nil
}
