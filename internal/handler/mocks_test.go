package handler

import (
	"context"

	"storefront-be/internal/analytics"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/coupon"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) userResult(args mock.Arguments) (*user.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	return m.userResult(m.Called(ctx, name, email, password))
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	return m.userResult(m.Called(ctx, email, password))
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	return m.userResult(m.Called(ctx, id))
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id string, patch user.ProfilePatch) (*user.User, error) {
	return m.userResult(m.Called(ctx, id, patch))
}

func (m *MockUserService) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserService) AdminUpdate(ctx context.Context, id string, patch user.AdminPatch) (*user.User, error) {
	return m.userResult(m.Called(ctx, id, patch))
}

func (m *MockUserService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter product.ListFilter) ([]product.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) GetByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, in product.CreateInput) (*product.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, in product.UpdateInput) (*product.Product, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) AddReview(ctx context.Context, productID, userID, userName string, rating int, comment string) (*product.Review, error) {
	args := m.Called(ctx, productID, userID, userName, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Review), args.Error(1)
}

func (m *MockProductService) DeleteReview(ctx context.Context, productID, reviewID string) error {
	return m.Called(ctx, productID, reviewID).Error(0)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, filter *string) ([]category.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, in category.CreateInput) (*category.Category, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id string, in category.UpdateInput) (*category.Category, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) entries(args mock.Arguments) ([]cart.Entry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Entry), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, userID string) ([]cart.Entry, error) {
	return m.entries(m.Called(ctx, userID))
}

func (m *MockCartService) Replace(ctx context.Context, userID string, incoming []cart.IncomingItem) ([]cart.Entry, error) {
	return m.entries(m.Called(ctx, userID, incoming))
}

func (m *MockCartService) Merge(ctx context.Context, userID string, incoming []cart.IncomingItem) ([]cart.Entry, error) {
	return m.entries(m.Called(ctx, userID, incoming))
}

type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) couponResult(args mock.Arguments) (*coupon.Coupon, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) List(ctx context.Context) ([]coupon.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) Create(ctx context.Context, in coupon.CreateInput) (*coupon.Coupon, error) {
	return m.couponResult(m.Called(ctx, in))
}

func (m *MockCouponService) Update(ctx context.Context, id string, in coupon.UpdateInput) (*coupon.Coupon, error) {
	return m.couponResult(m.Called(ctx, id, in))
}

func (m *MockCouponService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCouponService) Validate(ctx context.Context, code string) (*coupon.Coupon, error) {
	return m.couponResult(m.Called(ctx, code))
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) orderResult(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) orders(args mock.Arguments) ([]order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, in order.CreateInput) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, in))
}

func (m *MockOrderService) ListMine(ctx context.Context, userID string) ([]order.Order, error) {
	return m.orders(m.Called(ctx, userID))
}

func (m *MockOrderService) GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, id, requesterID, isAdmin))
}

func (m *MockOrderService) MarkPaid(ctx context.Context, id, requesterID string, isAdmin bool, result order.PaymentResult) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, id, requesterID, isAdmin, result))
}

func (m *MockOrderService) ListAll(ctx context.Context, status string) ([]order.Order, error) {
	return m.orders(m.Called(ctx, status))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, id, status))
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Summary(ctx context.Context) (*analytics.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Summary), args.Error(1)
}
