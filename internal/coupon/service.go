package coupon

import (
	"context"
	"errors"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Coupon, error)
	Create(ctx context.Context, in CreateInput) (*Coupon, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Coupon, error)
	Delete(ctx context.Context, id string) error

	// Validate looks a code up and checks it can be applied now. It does not
	// reserve or consume the coupon.
	Validate(ctx context.Context, code string) (*Coupon, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func checkDiscount(d float64) error {
	if d < 0 || d > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]Coupon, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Coupon, error) {
	code := NormalizeCode(in.Code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	if err := checkDiscount(in.Discount); err != nil {
		return nil, err
	}
	if in.ExpirationDate.IsZero() {
		return nil, ErrExpirationRequired
	}

	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil && !errors.Is(err, ErrCouponNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCodeExists
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	c, err := s.repo.Create(ctx, &Coupon{
		Code:           code,
		Discount:       in.Discount,
		ExpirationDate: in.ExpirationDate,
		IsActive:       active,
		CreatedBy:      in.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("coupon created",
		zap.String("layer", "service"),
		zap.String("code", c.Code),
		zap.Float64("discount", c.Discount),
	)
	return c, nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Coupon, error) {
	if in.Discount != nil {
		if err := checkDiscount(*in.Discount); err != nil {
			return nil, err
		}
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := ApplyUpdate(*current, in)
	return s.repo.Update(ctx, &updated)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Validate(ctx context.Context, code string) (*Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Validate"),
	)

	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrInvalidCode
	}

	c, err := s.repo.GetByCode(ctx, normalized)
	if errors.Is(err, ErrCouponNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	if err := CheckValidity(*c, s.now()); err != nil {
		log.Info("coupon rejected", zap.String("code", normalized), zap.String("reason", err.Error()))
		return nil, err
	}

	return c, nil
}
