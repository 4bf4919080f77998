package domain

import "time"

// Routing for confirmed orders.
const (
	OrdersExchange        = "orders_topic"
	NotificationsExchange = "notifications_fanout"
	RecorderQueue         = "order_records.q"
	NotificationsQueue    = "notifications.q"
	OrderConfirmedKey     = "order.confirmed"
)

// OrderConfirmedMessage is the record-order notification emitted once per
// confirmed order.
type OrderConfirmedMessage struct {
	Order        Order     `json:"order"`
	CustomerName string    `json:"customer_name"`
	AdminEmail   string    `json:"admin_email"`
	ConfirmedAt  time.Time `json:"confirmed_at"`
	Source       string    `json:"source"`
}
