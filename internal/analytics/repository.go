package analytics

import (
	"context"
	"database/sql"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Counts(ctx context.Context) (Counts, error)
	DailySales(ctx context.Context, since time.Time) ([]DailySales, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(total_price), 0) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COUNT(*) FROM orders WHERE status = 'delivered')
	`).Scan(&c.Users, &c.Products, &c.Orders, &c.Revenue, &c.PendingOrders, &c.DeliveredOrders)
	if err != nil {
		logger.FromCtx(ctx).Error("counts query failed",
			zap.String("layer", "repository"),
			zap.String("method", "Counts"),
			zap.Error(err),
		)
		return Counts{}, err
	}
	return c, nil
}

func (r *repository) DailySales(ctx context.Context, since time.Time) ([]DailySales, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DailySales"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			TO_CHAR(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			COALESCE(SUM(total_price), 0),
			COUNT(*)
		FROM orders
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day ASC
	`, since)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []DailySales{}
	for rows.Next() {
		var d DailySales
		if err := rows.Scan(&d.Date, &d.Sales, &d.Orders); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TopProducts ranks products by units sold across all order snapshots.
func (r *repository) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "TopProducts"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			product_id,
			(ARRAY_AGG(name ORDER BY id))[1],
			SUM(quantity),
			SUM(quantity * price)
		FROM order_items
		GROUP BY product_id
		ORDER BY SUM(quantity) DESC, product_id
		LIMIT $1
	`, limit)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []TopProduct{}
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.TotalSold, &p.Revenue); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
