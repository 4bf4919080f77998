// Package notify sends the customer and admin e-mails for confirmed orders.
// Delivery is simulated: each mail is written to the log.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/common/mq"
	"dolapkapak/internal/domain"
	"dolapkapak/internal/view"
)

const (
	customerSubject = "Siparişiniz alındı - %s"
	adminSubject    = "Yeni sipariş: %s"
)

type Mail struct {
	To      string
	Subject string
	Body    string
}

type NotifyService struct {
	adminEmail string
	lg         *logger.Logger
}

// NewNotifyService uses adminEmail when a message carries none.
func NewNotifyService(adminEmail string, lg *logger.Logger) *NotifyService {
	return &NotifyService{adminEmail: adminEmail, lg: lg}
}

func (s *NotifyService) Handle(_ context.Context, d amqp.Delivery) error {
	var msg domain.OrderConfirmedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		return fmt.Errorf("%w: decode: %v", mq.ErrDLQ, err)
	}
	if msg.Order.OrderID == "" || msg.Order.OwnerEmail == "" {
		return fmt.Errorf("%w: incomplete order %q", mq.ErrDLQ, msg.Order.OrderID)
	}

	customer, admin := s.Compose(msg)
	s.lg.Info("customer_mail_simulated", map[string]any{
		"order_id": msg.Order.OrderID, "to": customer.To, "subject": customer.Subject,
	})
	s.lg.Info("admin_mail_simulated", map[string]any{
		"order_id": msg.Order.OrderID, "to": admin.To, "subject": admin.Subject,
	})
	return nil
}

// Compose builds the two mails for msg.
func (s *NotifyService) Compose(msg domain.OrderConfirmedMessage) (customer, admin Mail) {
	o := msg.Order
	to := msg.AdminEmail
	if to == "" {
		to = s.adminEmail
	}
	price := view.Currency(o.Price)
	date := view.Date(o.CreatedAt, view.Istanbul)

	customer = Mail{
		To:      o.OwnerEmail,
		Subject: fmt.Sprintf(customerSubject, o.TrackingNumber),
		Body: fmt.Sprintf("Sayın %s,\n\n%s tarihli %s takip numaralı siparişiniz alınmıştır.\nYaklaşık tutar: %s\n",
			msg.CustomerName, date, o.TrackingNumber, price),
	}
	admin = Mail{
		To:      to,
		Subject: fmt.Sprintf(adminSubject, o.OrderID),
		Body: fmt.Sprintf("Müşteri: %s <%s>\nTakip no: %s\nKalem: %d\nTutar: %s\n",
			msg.CustomerName, o.OwnerEmail, o.TrackingNumber, len(o.Items), price),
	}
	return customer, admin
}
