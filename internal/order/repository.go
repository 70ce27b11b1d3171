package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// Create stores the order with its items, takes the ordered quantities
	// out of stock and empties the user's saved cart in one transaction.
	Create(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	List(ctx context.Context, status Status) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status, deliveredAt *time.Time) (*Order, error)
	MarkPaid(ctx context.Context, id string, result PaymentResult, paidAt time.Time) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderSelect = `
	SELECT
		o.id, o.order_number, o.user_id, COALESCE(u.name, ''), COALESCE(u.email, ''),
		o.street, o.city, o.state, o.zip_code, o.country,
		o.payment_method, o.payment_id, o.payment_status, o.payment_update_time, o.payment_email,
		o.items_price, o.shipping_price, o.tax_price, o.total_price,
		o.coupon, o.discount,
		o.is_paid, o.paid_at, o.is_delivered, o.delivered_at,
		o.status, o.created_at, o.updated_at
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o                                         Order
		userID, userName, userEmail               sql.NullString
		payID, payStatus, payUpdateTime, payEmail sql.NullString
		coupon                                    sql.NullString
		paidAt, deliveredAt                       sql.NullTime
	)
	if err := row.Scan(
		&o.ID, &o.OrderNumber, &userID, &userName, &userEmail,
		&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.ZipCode, &o.ShippingAddress.Country,
		&o.PaymentMethod, &payID, &payStatus, &payUpdateTime, &payEmail,
		&o.ItemsPrice, &o.ShippingPrice, &o.TaxPrice, &o.TotalPrice,
		&coupon, &o.Discount,
		&o.IsPaid, &paidAt, &o.IsDelivered, &deliveredAt,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if userID.Valid {
		o.User = userID.String
		o.Customer = &Customer{ID: userID.String, Name: userName.String, Email: userEmail.String}
	}
	if payID.Valid {
		o.PaymentResult = &PaymentResult{
			ID:           payID.String,
			Status:       payStatus.String,
			UpdateTime:   payUpdateTime.String,
			EmailAddress: payEmail.String,
		}
	}
	if coupon.Valid {
		o.Coupon = &coupon.String
	}
	if paidAt.Valid {
		o.PaidAt = &paidAt.Time
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	o.OrderItems = []LineItem{}
	return &o, nil
}

func nullable(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *repository) Create(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("user_id", o.User),
		zap.String("order_number", o.OrderNumber),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id,
			street, city, state, zip_code, country,
			payment_method,
			items_price, shipping_price, tax_price, total_price,
			coupon, discount, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber, o.User,
		o.ShippingAddress.Street, o.ShippingAddress.City, o.ShippingAddress.State,
		o.ShippingAddress.ZipCode, o.ShippingAddress.Country,
		o.PaymentMethod,
		o.ItemsPrice, o.ShippingPrice, o.TaxPrice, o.TotalPrice,
		nullable(o.Coupon), o.Discount, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("insert order failed", zap.Error(err))
		return nil, err
	}

	for _, it := range o.OrderItems {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = NOW()
			WHERE id = $2 AND stock >= $1
		`, it.Quantity, it.Product)
		if err != nil {
			log.Error("stock update failed", zap.String("product_id", it.Product), zap.Error(err))
			return nil, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			log.Warn("insufficient stock", zap.String("product_id", it.Product), zap.Int("quantity", it.Quantity))
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, it.Name)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, image, price, quantity)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, o.ID, it.Product, it.Name, it.Image, it.Price, it.Quantity)
		if err != nil {
			log.Error("insert order item failed", zap.Error(err))
			return nil, err
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.User); err != nil {
		log.Error("clear cart failed", zap.Error(err))
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return nil, err
	}

	log.Info("order created", zap.String("order_id", o.ID))
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.String("order_id", id),
	)

	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+" WHERE o.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	orders := []Order{*o}
	if err := r.attachItems(ctx, orders); err != nil {
		log.Error("load items failed", zap.Error(err))
		return nil, err
	}
	return &orders[0], nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
		zap.String("user_id", userID),
	)

	orders, err := r.query(ctx, orderSelect+" WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC", userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// List returns every order newest first, optionally narrowed to one status.
func (r *repository) List(ctx context.Context, status Status) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("status", string(status)),
	)

	query := orderSelect
	args := []interface{}{}
	if status != "" {
		query += " WHERE o.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY o.created_at DESC, o.id DESC"

	orders, err := r.query(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (r *repository) query(ctx context.Context, query string, args ...interface{}) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the line items of all given orders with one query.
func (r *repository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, name, image, price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      LineItem
		)
		if err := rows.Scan(&orderID, &it.Product, &it.Name, &it.Image, &it.Price, &it.Quantity); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].OrderItems = append(orders[i].OrderItems, it)
		}
	}
	return rows.Err()
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id string,
	status Status,
	deliveredAt *time.Time,
) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)

	var at sql.NullTime
	if deliveredAt != nil {
		at = sql.NullTime{Time: *deliveredAt, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
			is_delivered = is_delivered OR $2::timestamptz IS NOT NULL,
			delivered_at = COALESCE($2::timestamptz, delivered_at),
			updated_at = NOW()
		WHERE id = $3
	`, status, at, id)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrOrderNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) MarkPaid(
	ctx context.Context,
	id string,
	result PaymentResult,
	paidAt time.Time,
) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MarkPaid"),
		zap.String("order_id", id),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET is_paid = TRUE,
			paid_at = $1,
			payment_id = $2,
			payment_status = $3,
			payment_update_time = $4,
			payment_email = $5,
			updated_at = NOW()
		WHERE id = $6
	`, paidAt, result.ID, result.Status, result.UpdateTime, result.EmailAddress, id)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrOrderNotFound
	}

	return r.GetByID(ctx, id)
}
