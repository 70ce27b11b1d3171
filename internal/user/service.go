package user

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)

	List(ctx context.Context) ([]User, error)
	AdminUpdate(ctx context.Context, id string, patch AdminPatch) (*User, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	name = strings.TrimSpace(name)
	email = utils.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, &User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     RoleUser,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		log.Info("login rejected")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("login rejected")
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProfile"),
		zap.String("user_id", id),
	)

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Address != nil && !patch.Address.IsComplete() {
		return nil, ErrIncompleteAddress
	}

	updated := ApplyProfilePatch(*u, patch)

	if patch.NewPassword != nil && *patch.NewPassword != "" {
		if patch.CurrentPassword == nil || *patch.CurrentPassword == "" {
			return nil, ErrCurrentPasswordRequired
		}
		if !CheckPasswordHash(*patch.CurrentPassword, u.Password) {
			return nil, ErrCurrentPasswordIncorrect
		}

		hashed, err := HashPassword(*patch.NewPassword)
		if err != nil {
			log.Error("failed to hash password", zap.Error(err))
			return nil, err
		}
		updated.Password = hashed
	}

	res, err := s.repo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	log.Info("profile updated")
	return res, nil
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) AdminUpdate(ctx context.Context, id string, patch AdminPatch) (*User, error) {
	if patch.Role != nil && *patch.Role != "" && !patch.Role.Valid() {
		return nil, ErrInvalidRole
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := ApplyAdminPatch(*u, patch)
	res, err := s.repo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user updated by admin",
		zap.String("layer", "service"),
		zap.String("target_user_id", id),
		zap.String("role", string(res.Role)),
	)
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
