package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/analytics"
	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/coupon"
	"storefront-be/internal/db"
	"storefront-be/internal/events"
	"storefront-be/internal/handler"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
	newPublisher    = dialPublisher
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database := initDBFunc(cfg)
	defer database.Close()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	router := newServer(cfg, database, publisher)

	logger.L().Info("server starting",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(":"+cfg.AppPort, router)
}

// newServer wires repositories, services and handlers into the router.
func newServer(cfg *config.Config, database *sql.DB, publisher events.Publisher) *gin.Engine {
	userSvc := user.NewService(user.NewRepository(database))
	addressSvc := address.NewService(address.NewRepository(database))
	productSvc := product.NewService(product.NewRepository(database))
	categorySvc := category.NewService(category.NewRepository(database))
	cartSvc := cart.NewService(cart.NewRepository(database))
	couponSvc := coupon.NewService(coupon.NewRepository(database))
	analyticsSvc := analytics.NewService(analytics.NewRepository(database))

	orderSvc := order.NewService(
		order.NewRepository(database),
		productSvc,
		couponSvc,
		addressSvc,
		publisher,
		order.Pricer{ShippingPrice: cfg.ShippingPrice, TaxRate: cfg.TaxRate},
	)

	h := handler.New(handler.Deps{
		Users:      userSvc,
		Products:   productSvc,
		Categories: categorySvc,
		Carts:      cartSvc,
		Coupons:    couponSvc,
		Orders:     orderSvc,
		Analytics:  analyticsSvc,
		Tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		Production: cfg.IsProduction(),
	})

	return handler.NewRouter(h, cfg.ClientURLs)
}

// dialPublisher falls back to a no-op publisher when the broker is not
// configured or unreachable.
func dialPublisher(cfg *config.Config) events.Publisher {
	if cfg.RabbitMQURL == "" {
		return events.NopPublisher{}
	}

	p, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.OrderExchange)
	if err != nil {
		logger.L().Warn("order events disabled", zap.Error(err))
		return events.NopPublisher{}
	}
	return p
}

func startServer(addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
