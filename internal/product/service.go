package product

import (
	"context"
	"strings"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, in CreateInput) (*Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Product, error)
	Delete(ctx context.Context, id string) error

	AddReview(ctx context.Context, productID, userID, userName string, rating int, comment string) (*Review, error)
	DeleteReview(ctx context.Context, productID, reviewID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByIDs(ctx context.Context, ids []string) ([]Product, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	p := Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
		Stock:       in.Stock,
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = in.Category
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &p)
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := ApplyUpdate(*current, in)
	if err := validate(updated); err != nil {
		return nil, err
	}
	updated.Reviews = nil

	return s.repo.Update(ctx, &updated)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) AddReview(
	ctx context.Context,
	productID, userID, userName string,
	rating int,
	comment string,
) (*Review, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddReview"),
		zap.String("product_id", productID),
	)

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	rv, err := s.repo.AddReview(ctx, productID, Review{
		User:    userID,
		Name:    userName,
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
	})
	if err != nil {
		return nil, err
	}

	log.Info("review added", zap.String("review_id", rv.ID), zap.Int("rating", rating))
	return rv, nil
}

func (s *service) DeleteReview(ctx context.Context, productID, reviewID string) error {
	if err := s.repo.DeleteReview(ctx, productID, reviewID); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("review deleted",
		zap.String("layer", "service"),
		zap.String("product_id", productID),
		zap.String("review_id", reviewID),
	)
	return nil
}
