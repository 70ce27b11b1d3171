package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter *string) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, c *Category) (*Category, error)
	Update(ctx context.Context, c *Category) (*Category, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const categoryColumns = `id, name, COALESCE(description, ''), slug, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*Category, error) {
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Both name and slug carry unique indexes; either collision is a duplicate.
func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateCategory
	}
	return err
}

func (r *repository) List(ctx context.Context, filter *string) ([]Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("filter", utils.PtrString(filter)),
	)

	query := `SELECT ` + categoryColumns + ` FROM categories c`

	where := []string{}
	args := []interface{}{}

	if filter != nil && *filter != "" {
		where = append(where, fmt.Sprintf("c.name ILIKE $%d", len(args)+1))
		args = append(args, utils.ContainsPattern(*filter))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY c.name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, *c)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get category failed",
			zap.String("layer", "repository"),
			zap.String("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, in *Category) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("category_name", in.Name),
	)

	query := `
		INSERT INTO categories (name, description, slug)
		VALUES ($1, $2, $3)
		RETURNING ` + categoryColumns

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.Slug))
	if err != nil {
		err = mapWriteError(err)
		if !errors.Is(err, ErrDuplicateCategory) {
			log.Error("insert failed", zap.Error(err))
		}
		return nil, err
	}

	log.Info("category created", zap.String("category_id", c.ID))
	return c, nil
}

func (r *repository) Update(ctx context.Context, in *Category) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("category_id", in.ID),
	)

	query := `
		UPDATE categories
		SET name = $1,
		    description = $2,
		    slug = $3,
		    updated_at = NOW()
		WHERE id = $4
		RETURNING ` + categoryColumns

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.Slug, in.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		err = mapWriteError(err)
		if !errors.Is(err, ErrDuplicateCategory) {
			log.Error("update failed", zap.Error(err))
		}
		return nil, err
	}

	return c, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("delete failed",
			zap.String("layer", "repository"),
			zap.String("category_id", id),
			zap.Error(err),
		)
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
