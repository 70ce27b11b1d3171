package analytics

import (
	"context"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	salesWindow    = 7 * 24 * time.Hour
	topProductsMax = 5
)

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Summary runs the three aggregate queries concurrently; the first failure
// cancels the others.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	var (
		counts Counts
		daily  []DailySales
		top    []TopProduct
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.repo.Counts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.repo.DailySales(gctx, s.now().Add(-salesWindow))
		return err
	})
	g.Go(func() error {
		var err error
		top, err = s.repo.TopProducts(gctx, topProductsMax)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.FromCtx(ctx).Error("analytics failed",
			zap.String("layer", "service"),
			zap.String("method", "Summary"),
			zap.Error(err),
		)
		return nil, err
	}

	return &Summary{
		TotalUsers:      counts.Users,
		TotalProducts:   counts.Products,
		TotalOrders:     counts.Orders,
		TotalRevenue:    counts.Revenue,
		PendingOrders:   counts.PendingOrders,
		DeliveredOrders: counts.DeliveredOrders,
		DailySales:      daily,
		TopProducts:     top,
	}, nil
}
