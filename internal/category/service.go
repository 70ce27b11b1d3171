package category

import (
	"context"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter *string) ([]Category, error)
	Create(ctx context.Context, in CreateInput) (*Category, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Category, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter *string) ([]Category, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	return s.repo.Create(ctx, &Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Slug:        utils.Slugify(name),
	})
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("category_id", id),
	)

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		c.Name = strings.TrimSpace(*in.Name)
		c.Slug = utils.Slugify(c.Name)
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}

	log.Info("category updated", zap.String("slug", updated.Slug))
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
