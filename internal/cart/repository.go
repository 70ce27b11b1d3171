package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCart(ctx context.Context, userID string) ([]Entry, error)
	// UpdateCart replaces the stored cart with fn(stored) while holding a lock
	// on the owning user row.
	UpdateCart(ctx context.Context, userID string, fn func(stored []Item) []Item) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCart(ctx context.Context, userID string) ([]Entry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCart"),
		zap.String("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			p.id,
			COALESCE(p.name, ''),
			COALESCE(p.image, ''),
			COALESCE(p.price, 0),
			ci.quantity
		FROM cart_items ci
		LEFT JOIN products p ON p.id::text = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.position ASC
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e  Entry
			id sql.NullString
		)
		if err := rows.Scan(&id, &e.Name, &e.Image, &e.Price, &e.Quantity); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
		}
		if id.Valid {
			e.ID = &id.String
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *repository) UpdateCart(
	ctx context.Context,
	userID string,
	fn func(stored []Item) []Item,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateCart"),
		zap.String("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to lock user row", zap.Error(err))
		return err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY position ASC
	`, userID)
	if err != nil {
		log.Error("failed to load stored cart", zap.Error(err))
		return err
	}

	stored := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			rows.Close()
			return err
		}
		stored = append(stored, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	next := fn(stored)

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		log.Error("failed to clear stored cart", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedUpdateCart, err)
	}

	for i, it := range next {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, quantity, position)
			VALUES ($1, $2, $3, $4)
		`, userID, it.ProductID, it.Quantity, i); err != nil {
			log.Error("failed to insert cart item",
				zap.String("product_id", it.ProductID),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %v", ErrFailedUpdateCart, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return err
	}

	log.Debug("cart written", zap.Int("lines", len(next)))
	return nil
}
