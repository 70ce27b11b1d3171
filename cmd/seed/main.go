package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"go.uber.org/zap"
)

type sampleProduct struct {
	Name        string
	Category    string
	Price       float64
	Stock       int
	Image       string
	Description string
}

var sampleCategories = []category.CreateInput{
	{Name: "Electronics", Description: "Phones, laptops and accessories"},
	{Name: "Home & Kitchen", Description: "Everything for the house"},
	{Name: "Books", Description: "Fiction and non-fiction"},
}

var sampleProducts = []sampleProduct{
	{Name: "Wireless Headphones", Category: "Electronics", Price: 89.99, Stock: 25, Image: "/images/headphones.jpg", Description: "Over-ear, noise cancelling"},
	{Name: "Smartphone", Category: "Electronics", Price: 599, Stock: 10, Image: "/images/phone.jpg", Description: "6.1 inch display, 128 GB"},
	{Name: "Chef Knife", Category: "Home & Kitchen", Price: 45.5, Stock: 40, Image: "/images/knife.jpg", Description: "8 inch stainless steel"},
	{Name: "Go in Practice", Category: "Books", Price: 39.99, Stock: 15, Image: "/images/go-book.jpg", Description: "Recipes for everyday Go"},
}

type seeder struct {
	users      user.Service
	categories category.Service
	products   product.Service
}

func main() {
	adminEmail := flag.String("admin-email", envOr("SEED_ADMIN_EMAIL", "admin@example.com"), "admin account email")
	adminPassword := flag.String("admin-password", envOr("SEED_ADMIN_PASSWORD", "admin123"), "admin account password")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect db", zap.Error(err))
	}
	defer database.Close()

	s := seeder{
		users:      user.NewService(user.NewRepository(database)),
		categories: category.NewService(category.NewRepository(database)),
		products:   product.NewService(product.NewRepository(database)),
	}
	if err := s.run(context.Background(), *adminEmail, *adminPassword); err != nil {
		logger.L().Fatal("seed failed", zap.Error(err))
	}
	logger.L().Info("seed complete")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (s seeder) run(ctx context.Context, adminEmail, adminPassword string) error {
	if err := s.admin(ctx, adminEmail, adminPassword); err != nil {
		return fmt.Errorf("admin: %w", err)
	}

	ids, err := s.seedCategories(ctx)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}

	if err := s.seedProducts(ctx, ids); err != nil {
		return fmt.Errorf("products: %w", err)
	}
	return nil
}

// admin registers the account if needed and promotes it.
func (s seeder) admin(ctx context.Context, email, password string) error {
	u, err := s.users.Register(ctx, "Admin", email, password)
	if errors.Is(err, user.ErrEmailExists) {
		u, err = s.users.Login(ctx, email, password)
	}
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return nil
	}

	role := user.RoleAdmin
	_, err = s.users.AdminUpdate(ctx, u.ID, user.AdminPatch{Role: &role})
	return err
}

func (s seeder) seedCategories(ctx context.Context) (map[string]string, error) {
	existing, err := s.categories.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(existing))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	for _, in := range sampleCategories {
		if _, ok := ids[in.Name]; ok {
			continue
		}
		c, err := s.categories.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		ids[c.Name] = c.ID
		logger.L().Info("category created", zap.String("name", c.Name))
	}
	return ids, nil
}

func (s seeder) seedProducts(ctx context.Context, categoryIDs map[string]string) error {
	existing, err := s.products.List(ctx, product.ListFilter{})
	if err != nil {
		return err
	}

	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[strings.ToLower(p.Name)] = true
	}

	for _, sp := range sampleProducts {
		if have[strings.ToLower(sp.Name)] {
			continue
		}

		in := product.CreateInput{
			Name:        sp.Name,
			Price:       sp.Price,
			Image:       sp.Image,
			Description: sp.Description,
			Stock:       sp.Stock,
		}
		if id, ok := categoryIDs[sp.Category]; ok {
			in.Category = &id
		}

		p, err := s.products.Create(ctx, in)
		if err != nil {
			return err
		}
		logger.L().Info("product created", zap.String("name", p.Name), zap.String("id", p.ID))
	}
	return nil
}
