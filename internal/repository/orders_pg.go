package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"dolapkapak/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type OrdersRepositoryInterface interface {
	// InsertOrder stores o with its items and file in one transaction.
	// It reports false when the order id is already recorded.
	InsertOrder(ctx context.Context, o domain.Order) (bool, error)
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
}

type OrdersPG struct {
	pool *pgxpool.Pool
}

func NewOrdersPG(pool *pgxpool.Pool) *OrdersPG { return &OrdersPG{pool: pool} }

func (r *OrdersPG) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create ledger schema: %w", err)
	}
	return nil
}

func (r *OrdersPG) InsertOrder(ctx context.Context, o domain.Order) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		INSERT INTO orders (order_id, tracking_number, owner_email, status, price, address, billing_info, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)
		ON CONFLICT (order_id) DO NOTHING`,
		o.OrderID, o.TrackingNumber, o.OwnerEmail, string(o.Status), o.Price.String(), o.Address, o.BillingInfo, o.CreatedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("insert order %s: %w", o.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	batch := &pgx.Batch{}
	for i, it := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, item_id, width, height, quantity, model, color, notes, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			o.OrderID, it.ID, it.Width, it.Height, it.Quantity, string(it.Model), string(it.Color), it.Notes, i)
	}
	if o.File != nil {
		batch.Queue(`INSERT INTO order_files (order_id, name, reference) VALUES ($1, $2, $3)`,
			o.OrderID, o.File.Name, o.File.Reference)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return false, fmt.Errorf("insert order %s details: %w", o.OrderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit order %s: %w", o.OrderID, err)
	}
	return true, nil
}

func (r *OrdersPG) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	var (
		o      domain.Order
		status string
		price  string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT order_id, tracking_number, owner_email, status, price::text, address, billing_info, created_at
		FROM orders WHERE order_id = $1`, orderID).
		Scan(&o.OrderID, &o.TrackingNumber, &o.OwnerEmail, &status, &price, &o.Address, &o.BillingInfo, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("select order %s: %w", orderID, err)
	}
	o.Status = domain.Status(status)
	if o.Price, err = decimal.NewFromString(price); err != nil {
		return domain.Order{}, fmt.Errorf("order %s price %q: %w", orderID, price, err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT item_id, width, height, quantity, model, color, notes
		FROM order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("select items of %s: %w", orderID, err)
	}
	o.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderItem, error) {
		var (
			it           domain.OrderItem
			model, color string
		)
		err := row.Scan(&it.ID, &it.Width, &it.Height, &it.Quantity, &model, &color, &it.Notes)
		it.Model, it.Color = domain.CabinetModel(model), domain.SurfaceColor(color)
		return it, err
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("scan items of %s: %w", orderID, err)
	}

	var f domain.FileRef
	err = r.pool.QueryRow(ctx, `SELECT name, reference FROM order_files WHERE order_id = $1`, orderID).
		Scan(&f.Name, &f.Reference)
	switch {
	case err == nil:
		o.File = &f
	case !errors.Is(err, pgx.ErrNoRows):
		return domain.Order{}, fmt.Errorf("select file of %s: %w", orderID, err)
	}
	return o, nil
}
