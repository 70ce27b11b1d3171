package address

import (
	"context"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// ResolveShipping picks the address an order ships to: the profile address
	// when one is stored, otherwise the supplied one, which is then saved to
	// the profile.
	ResolveShipping(ctx context.Context, userID string, supplied *Address) (Address, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ResolveShipping(
	ctx context.Context,
	userID string,
	supplied *Address,
) (Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "ResolveShipping"),
		zap.String("user_id", userID),
	)

	stored, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Address{}, err
	}
	if stored != nil {
		return *stored, nil
	}

	if supplied == nil || !supplied.IsComplete() {
		log.Warn("no shipping address available")
		return Address{}, ErrAddressRequired
	}

	addr := supplied.Trimmed()
	if err := s.repo.Save(ctx, userID, addr); err != nil {
		log.Error("failed to save address to profile", zap.Error(err))
		return Address{}, err
	}

	log.Info("shipping address saved to profile")
	return addr, nil
}
