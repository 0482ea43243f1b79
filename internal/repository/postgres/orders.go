package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

const orderColumns = `
	id, external_order_id, customer_id, cart_id, status, customer_name, customer_email,
	customer_phone, shipping_address, subtotal, shipping_cost, total, items_count,
	payment_method, payment_gateway, payment_status, rejection_reason,
	tracking_carrier, tracking_number, tracking_url, created_at, updated_at
`

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.ExternalOrderID,
		order.CustomerID,
		order.CartID,
		order.Status,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		address,
		order.Subtotal,
		order.ShippingCost,
		order.Total,
		order.ItemsCount,
		order.PaymentMethod,
		order.PaymentGateway,
		order.PaymentStatus,
		order.RejectionReason,
		order.TrackingCarrier,
		order.TrackingNumber,
		order.TrackingURL,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, status, limit, offset)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error {
	query := `
		UPDATE orders
		SET status = $2, rejection_reason = COALESCE($3, rejection_reason), updated_at = $4
		WHERE id = $1
	`
	return r.exec(ctx, "status", query, id, status, reason, time.Now())
}

func (r *orderRepository) UpdateTracking(ctx context.Context, id uuid.UUID, carrier, trackingNumber, trackingURL *string) error {
	query := `
		UPDATE orders
		SET status = $2, tracking_carrier = $3, tracking_number = $4, tracking_url = $5, updated_at = $6
		WHERE id = $1
	`
	return r.exec(ctx, "tracking", query, id, domain.OrderStatusShipped, carrier, trackingNumber, trackingURL, time.Now())
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	query := `
		UPDATE orders
		SET payment_status = $2, updated_at = $3
		WHERE id = $1
	`
	return r.exec(ctx, "payment status", query, id, status, time.Now())
}

func (r *orderRepository) exec(ctx context.Context, what, query string, id uuid.UUID, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, append([]interface{}{id}, args...)...)
	if err != nil {
		r.logger.Error("Failed to update order "+what, zap.Error(err), zap.String("order_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var address []byte
	var paymentGateway, rejectionReason, trackingCarrier, trackingNumber, trackingURL sql.NullString

	err := row.Scan(
		&order.ID,
		&order.ExternalOrderID,
		&order.CustomerID,
		&order.CartID,
		&order.Status,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&address,
		&order.Subtotal,
		&order.ShippingCost,
		&order.Total,
		&order.ItemsCount,
		&order.PaymentMethod,
		&paymentGateway,
		&order.PaymentStatus,
		&rejectionReason,
		&trackingCarrier,
		&trackingNumber,
		&trackingURL,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(address) > 0 {
		if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
		}
	}

	order.PaymentGateway = nullString(paymentGateway)
	order.RejectionReason = nullString(rejectionReason)
	order.TrackingCarrier = nullString(trackingCarrier)
	order.TrackingNumber = nullString(trackingNumber)
	order.TrackingURL = nullString(trackingURL)

	return &order, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

type orderItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *sql.DB, logger *zap.Logger) *orderItemRepository {
	return &orderItemRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch inserts all items in one transaction
func (r *orderItemRepository) CreateBatch(ctx context.Context, items []*domain.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO order_items (id, order_id, product_id, title, size_name, design_name, unit_price, quantity, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		_, err := tx.ExecContext(ctx, query,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Title,
			item.SizeName,
			item.DesignName,
			item.UnitPrice,
			item.Quantity,
			item.LineTotal,
			item.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to create order item", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, title, size_name, design_name, unit_price, quantity, line_total, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to query order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var sizeName, designName sql.NullString

		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Title,
			&sizeName,
			&designName,
			&item.UnitPrice,
			&item.Quantity,
			&item.LineTotal,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}

		item.SizeName = nullString(sizeName)
		item.DesignName = nullString(designName)
		items = append(items, &item)
	}

	return items, rows.Err()
}
