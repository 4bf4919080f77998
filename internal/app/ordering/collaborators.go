package ordering

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/domain"
)

// SessionAcquirer supplies the identity and order history on login.
type SessionAcquirer interface {
	Acquire(ctx context.Context) (domain.Session, []domain.Order, error)
}

// OrderRecorder is notified once per confirmed order. Calls are fire-and-forget.
type OrderRecorder interface {
	Record(ctx context.Context, order domain.Order, session domain.Session) error
}

var demoUser = domain.Session{Name: "Fırat Özgül", Email: "firat@antkap.com.tr"}

// FixtureAcquirer signs everyone in as the demo user after Delay.
type FixtureAcquirer struct {
	Delay time.Duration
	Demo  bool
}

func (a FixtureAcquirer) Acquire(ctx context.Context) (domain.Session, []domain.Order, error) {
	if a.Delay > 0 {
		t := time.NewTimer(a.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return domain.Session{}, nil, ctx.Err()
		}
	}
	if !a.Demo {
		return demoUser, nil, nil
	}
	return demoUser, demoOrders(), nil
}

func demoOrders() []domain.Order {
	return []domain.Order{
		{
			OrderID:        "ORD-1715346000000",
			TrackingNumber: "DK-240510-A1B2",
			OwnerEmail:     demoUser.Email,
			Items: []domain.OrderItem{
				{ID: "i1", Width: 600, Height: 720, Quantity: 4, Model: domain.ModelAlvicLuxe, Color: domain.ColorGlossyWhite, Notes: "Menteşe yeri açılsın."},
				{ID: "i2", Width: 450, Height: 720, Quantity: 2, Model: domain.ModelAlvicZenit, Color: domain.ColorMatteBlack},
			},
			Status:    domain.StatusCompleted,
			CreatedAt: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			Price:     decimal.NewFromInt(8856),
			Address:   "Örnek Mah. Test Sk. No:12 D:3, Ataşehir/İstanbul",
		},
		{
			OrderID:        "ORD-1716199200000",
			TrackingNumber: "DK-240520-C3D4",
			OwnerEmail:     demoUser.Email,
			Items: []domain.OrderItem{
				{ID: "i3", Width: 800, Height: 400, Quantity: 5, Model: domain.ModelEgepres, Color: domain.ColorWoodGrain},
			},
			Status:      domain.StatusInProduction,
			CreatedAt:   time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			Price:       decimal.NewFromInt(4000),
			BillingInfo: "Antkap Proje Ltd. Şti. - V.D. 1234567890",
		},
	}
}

// LogRecorder simulates the back office by logging what it would do.
type LogRecorder struct {
	lg         *logger.Logger
	adminEmail string
}

func NewLogRecorder(lg *logger.Logger, adminEmail string) *LogRecorder {
	return &LogRecorder{lg: lg, adminEmail: adminEmail}
}

func (r *LogRecorder) Record(_ context.Context, o domain.Order, s domain.Session) error {
	r.lg.Info("sheet_record_simulated", map[string]any{
		"order_id": o.OrderID, "tracking_number": o.TrackingNumber, "items": len(o.Items), "price": o.Price.String(),
	})
	if o.File != nil {
		r.lg.Info("drive_upload_simulated", map[string]any{"order_id": o.OrderID, "file": o.File.Name})
	}
	r.lg.Info("customer_mail_simulated", map[string]any{"order_id": o.OrderID, "to": o.OwnerEmail, "customer": s.Name})
	r.lg.Info("admin_mail_simulated", map[string]any{"order_id": o.OrderID, "to": r.adminEmail})
	return nil
}

type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte) error
}

// PublishRecorder hands confirmed orders to the recorder and notification services.
type PublishRecorder struct {
	pub        Publisher
	adminEmail string
	clock      func() time.Time
}

func NewPublishRecorder(pub Publisher, adminEmail string) *PublishRecorder {
	return &PublishRecorder{pub: pub, adminEmail: adminEmail, clock: time.Now}
}

func (r *PublishRecorder) Record(ctx context.Context, o domain.Order, s domain.Session) error {
	body, err := json.Marshal(domain.OrderConfirmedMessage{
		Order:        o,
		CustomerName: s.Name,
		AdminEmail:   r.adminEmail,
		ConfirmedAt:  r.clock().UTC(),
		Source:       "ordering-service",
	})
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", o.OrderID, err)
	}
	if err := r.pub.Publish(ctx, domain.OrdersExchange, domain.OrderConfirmedKey, body); err != nil {
		return fmt.Errorf("publish order %s: %w", o.OrderID, err)
	}
	if err := r.pub.Publish(ctx, domain.NotificationsExchange, "", body); err != nil {
		return fmt.Errorf("publish notification %s: %w", o.OrderID, err)
	}
	return nil
}
