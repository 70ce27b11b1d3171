package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id string) error

	AddReview(ctx context.Context, productID string, rv Review) (*Review, error)
	DeleteReview(ctx context.Context, productID, reviewID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productSelect = `
	SELECT
		p.id, p.name, p.price, p.image, COALESCE(p.description, ''),
		p.category_id, COALESCE(c.name, ''),
		p.stock, p.rating, p.num_reviews,
		p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p          Product
		categoryID sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Image, &p.Description,
		&categoryID, &p.CategoryName,
		&p.Stock, &p.Rating, &p.NumReviews,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		p.Category = &categoryID.String
	}
	return &p, nil
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503":
			return ErrCategoryNotFound
		case "23505":
			return ErrAlreadyReviewed
		}
	}
	return err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("category", filter.Category),
		zap.String("search", filter.Search),
	)

	query := productSelect
	where := []string{}
	args := []interface{}{}

	if filter.Category != "" {
		where = append(where, fmt.Sprintf("(p.category_id::text = $%d OR c.slug = $%d)", len(args)+1, len(args)+1))
		args = append(args, filter.Category)
	}

	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, utils.ContainsPattern(filter.Search))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.created_at DESC, p.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

// GetByID loads the product and its reviews, newest first.
func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	if !isValidID(id) {
		return nil, ErrProductNotFound
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.String("product_id", id),
	)

	p, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, rating, COALESCE(comment, ''), created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
	`, id)
	if err != nil {
		log.Error("review query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	p.Reviews = []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.User, &rv.Name, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			log.Error("review scan failed", zap.Error(err))
			return nil, err
		}
		p.Reviews = append(p.Reviews, rv)
	}

	return p, rows.Err()
}

// GetByIDs returns the products that exist among ids, in no particular order.
func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isValidID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.QueryContext(ctx, productSelect+` WHERE p.id = ANY($1)`, pq.Array(valid))
	if err != nil {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "GetByIDs"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	created := *p
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, image, description, category_id, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		p.Name, p.Price, p.Image, p.Description, p.Category, p.Stock,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		err = mapWriteError(err)
		if !errors.Is(err, ErrCategoryNotFound) {
			log.Error("insert failed", zap.Error(err))
		}
		return nil, err
	}

	log.Info("product created", zap.String("product_id", created.ID))
	return &created, nil
}

func (r *repository) Update(ctx context.Context, p *Product) (*Product, error) {
	if !isValidID(p.ID) {
		return nil, ErrProductNotFound
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("product_id", p.ID),
	)

	updated := *p
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1,
		    price = $2,
		    image = $3,
		    description = $4,
		    category_id = $5,
		    stock = $6,
		    updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`,
		p.Name, p.Price, p.Image, p.Description, p.Category, p.Stock, p.ID,
	).Scan(&updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		err = mapWriteError(err)
		if !errors.Is(err, ErrCategoryNotFound) {
			log.Error("update failed", zap.Error(err))
		}
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return ErrProductNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("delete failed",
			zap.String("layer", "repository"),
			zap.String("product_id", id),
			zap.Error(err),
		)
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// lockProduct takes the row lock that serialises review writers on one product.
func lockProduct(ctx context.Context, tx *sql.Tx, productID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	return err
}

// recomputeRating rewrites rating and num_reviews from the stored reviews.
func recomputeRating(ctx context.Context, tx *sql.Tx, productID string) error {
	rows, err := tx.QueryContext(ctx, `SELECT rating FROM reviews WHERE product_id = $1`, productID)
	if err != nil {
		return err
	}

	ratings := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return err
		}
		ratings = append(ratings, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	avg, count := Aggregate(ratings)
	_, err = tx.ExecContext(ctx, `
		UPDATE products
		SET rating = $1,
		    num_reviews = $2,
		    updated_at = NOW()
		WHERE id = $3
	`, avg, count, productID)
	return err
}

func (r *repository) AddReview(ctx context.Context, productID string, rv Review) (*Review, error) {
	if !isValidID(productID) {
		return nil, ErrProductNotFound
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddReview"),
		zap.String("product_id", productID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := lockProduct(ctx, tx, productID); err != nil {
		return nil, err
	}

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2)`,
		productID, rv.User,
	).Scan(&exists); err != nil {
		log.Error("review lookup failed", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	created := rv
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, user_id, name, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`,
		productID, rv.User, rv.Name, rv.Rating, rv.Comment,
	).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, mapWriteError(err)
	}

	if err := recomputeRating(ctx, tx, productID); err != nil {
		log.Error("failed to recompute rating", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return nil, err
	}

	return &created, nil
}

func (r *repository) DeleteReview(ctx context.Context, productID, reviewID string) error {
	if !isValidID(productID) {
		return ErrProductNotFound
	}
	if !isValidID(reviewID) {
		return ErrReviewNotFound
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeleteReview"),
		zap.String("product_id", productID),
		zap.String("review_id", reviewID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := lockProduct(ctx, tx, productID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = $1 AND product_id = $2`,
		reviewID, productID,
	)
	if err != nil {
		log.Error("delete failed", zap.Error(err))
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}

	if err := recomputeRating(ctx, tx, productID); err != nil {
		log.Error("failed to recompute rating", zap.Error(err))
		return err
	}

	return tx.Commit()
}
