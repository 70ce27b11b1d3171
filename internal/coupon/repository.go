package coupon

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Coupon, error)
	GetByID(ctx context.Context, id string) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, c *Coupon) (*Coupon, error)
	Update(ctx context.Context, c *Coupon) (*Coupon, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const couponColumns = `id, code, discount, expiration_date, is_active, COALESCE(created_by::text, ''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoupon(row rowScanner) (*Coupon, error) {
	var c Coupon
	if err := row.Scan(
		&c.ID, &c.Code, &c.Discount, &c.ExpirationDate, &c.IsActive,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *repository) List(ctx context.Context) ([]Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	coupons := []Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		coupons = append(coupons, *c)
	}
	return coupons, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Coupon, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCouponNotFound
	}

	c, err := scanCoupon(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	return c, err
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("lookup by code failed",
			zap.String("layer", "repository"),
			zap.String("code", code),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, in *Coupon) (*Coupon, error) {
	q := `
		INSERT INTO coupons (code, discount, expiration_date, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + couponColumns

	var createdBy any
	if in.CreatedBy != "" {
		createdBy = in.CreatedBy
	}

	c, err := scanCoupon(r.db.QueryRowContext(ctx, q,
		in.Code, in.Discount, in.ExpirationDate, in.IsActive, createdBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCodeExists
		}
		logger.FromCtx(ctx).Error("insert failed",
			zap.String("layer", "repository"),
			zap.String("code", in.Code),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, in *Coupon) (*Coupon, error) {
	q := `
		UPDATE coupons
		SET code = $1,
		    discount = $2,
		    expiration_date = $3,
		    is_active = $4,
		    updated_at = NOW()
		WHERE id = $5
		RETURNING ` + couponColumns

	c, err := scanCoupon(r.db.QueryRowContext(ctx, q,
		in.Code, in.Discount, in.ExpirationDate, in.IsActive, in.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCodeExists
		}
		logger.FromCtx(ctx).Error("update failed",
			zap.String("layer", "repository"),
			zap.String("coupon_id", in.ID),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrCouponNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}
	return nil
}
