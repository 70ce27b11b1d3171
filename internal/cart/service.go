package cart

import (
	"context"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, userID string) ([]Entry, error)
	// Replace overwrites the stored cart with the posted one.
	Replace(ctx context.Context, userID string, incoming []IncomingItem) ([]Entry, error)
	// Merge sums the posted cart into the stored one. Used right after login.
	Merge(ctx context.Context, userID string, incoming []IncomingItem) ([]Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.GetCart(ctx, userID)
}

func (s *service) Replace(ctx context.Context, userID string, incoming []IncomingItem) ([]Entry, error) {
	items := Normalize(incoming)

	err := s.repo.UpdateCart(ctx, userID, func([]Item) []Item {
		return items
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("cart replaced",
		zap.String("layer", "service"),
		zap.Int("lines", len(items)),
	)
	return s.repo.GetCart(ctx, userID)
}

func (s *service) Merge(ctx context.Context, userID string, incoming []IncomingItem) ([]Entry, error) {
	items := Normalize(incoming)

	var merged []Item
	err := s.repo.UpdateCart(ctx, userID, func(stored []Item) []Item {
		merged = Merge(stored, items)
		return merged
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("cart merged",
		zap.String("layer", "service"),
		zap.Int("incoming_lines", len(items)),
		zap.Int("lines", len(merged)),
	)
	return s.repo.GetCart(ctx, userID)
}
