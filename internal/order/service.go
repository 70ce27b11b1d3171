package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/coupon"
	"storefront-be/internal/events"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]product.Product, error)
}

type CouponValidator interface {
	Validate(ctx context.Context, code string) (*coupon.Coupon, error)
}

type AddressResolver interface {
	ResolveShipping(ctx context.Context, userID string, supplied *address.Address) (address.Address, error)
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*Order, error)
	ListMine(ctx context.Context, userID string) ([]Order, error)
	// GetByID returns the order to its owner or to an admin.
	GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*Order, error)
	MarkPaid(ctx context.Context, id, requesterID string, isAdmin bool, result PaymentResult) (*Order, error)

	ListAll(ctx context.Context, status string) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}

type Pricer struct {
	ShippingPrice float64
	TaxRate       float64
}

type service struct {
	repo      Repository
	products  ProductLookup
	coupons   CouponValidator
	addresses AddressResolver
	publisher events.Publisher
	pricer    Pricer
	now       func() time.Time
}

func NewService(
	repo Repository,
	products ProductLookup,
	coupons CouponValidator,
	addresses AddressResolver,
	publisher events.Publisher,
	pricer Pricer,
) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{
		repo:      repo,
		products:  products,
		coupons:   coupons,
		addresses: addresses,
		publisher: publisher,
		pricer:    pricer,
		now:       time.Now,
	}
}

// collapse merges repeated product ids, keeping first-seen order.
func collapse(items []ItemInput) ([]ItemInput, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	out := make([]ItemInput, 0, len(items))
	index := map[string]int{}
	for _, it := range items {
		id := strings.TrimSpace(it.Product)
		if id == "" {
			return nil, ErrProductNotFound
		}
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if i, ok := index[id]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[id] = len(out)
		out = append(out, ItemInput{Product: id, Quantity: it.Quantity})
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (o *Order, err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("user_id", in.UserID),
	)
	defer func() { metrics.RecordOperation("order_create", err == nil) }()

	items, err := collapse(in.Items)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Product
	}
	found, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to load products", zap.Error(err))
		return nil, err
	}
	byID := make(map[string]product.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	lines := make([]LineItem, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.Product]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, it.Product)
		}
		if p.Stock < it.Quantity {
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, p.Name)
		}
		lines = append(lines, LineItem{
			Product:  p.ID,
			Name:     p.Name,
			Image:    p.Image,
			Price:    p.Price,
			Quantity: it.Quantity,
		})
	}

	var (
		couponCode      *string
		discountPercent float64
	)
	if code := coupon.NormalizeCode(in.Coupon); code != "" {
		c, err := s.coupons.Validate(ctx, code)
		if err != nil {
			log.Warn("coupon rejected at checkout", zap.String("coupon", code), zap.Error(err))
			return nil, err
		}
		couponCode = &c.Code
		discountPercent = c.Discount
	}

	shipTo, err := s.addresses.ResolveShipping(ctx, in.UserID, in.ShippingAddress)
	if err != nil {
		return nil, err
	}

	pricing := CalculatePricing(lines, discountPercent, s.pricer.ShippingPrice, s.pricer.TaxRate)
	if fields := pricing.mismatches(in.ClientTotals); len(fields) > 0 {
		log.Warn("client totals differ from server pricing",
			zap.Strings("fields", fields),
			zap.String("total_price", pricing.TotalPrice.StringFixed(2)),
		)
	}

	paymentMethod := strings.TrimSpace(in.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	o = &Order{
		OrderNumber:     utils.GenerateOrderNumber(s.now()),
		User:            in.UserID,
		OrderItems:      lines,
		ShippingAddress: shipTo,
		PaymentMethod:   paymentMethod,
		Coupon:          couponCode,
		Status:          StatusPending,
	}
	pricing.apply(o)

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderCreated, created)
	return created, nil
}

// publish never fails the caller; the order is already committed.
func (s *service) publish(ctx context.Context, eventType string, o *Order) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:        eventType,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.User,
		Status:      string(o.Status),
		TotalPrice:  o.TotalPrice,
		OccurredAt:  s.now().UTC(),
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("order event not published",
			zap.String("type", eventType),
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
}

func (s *service) ListMine(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.User != requesterID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) MarkPaid(
	ctx context.Context,
	id, requesterID string,
	isAdmin bool,
	result PaymentResult,
) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MarkPaid"),
		zap.String("order_id", id),
	)

	o, err := s.GetByID(ctx, id, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}
	if o.IsPaid {
		return nil, ErrAlreadyPaid
	}

	paid, err := s.repo.MarkPaid(ctx, id, result, s.now())
	metrics.RecordOperation("order_pay", err == nil)
	if err != nil {
		log.Error("failed to mark order paid", zap.Error(err))
		return nil, err
	}

	s.publish(ctx, events.OrderPaid, paid)
	return paid, nil
}

func (s *service) ListAll(ctx context.Context, status string) ([]Order, error) {
	st := Status(strings.ToLower(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, st)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	status = Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var deliveredAt *time.Time
	if status == StatusDelivered {
		now := s.now()
		deliveredAt = &now
	}

	o, err := s.repo.UpdateStatus(ctx, id, status, deliveredAt)
	metrics.RecordOperation("order_status_update", err == nil)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)
	s.publish(ctx, events.OrderStatusUpdated, o)
	return o, nil
}
