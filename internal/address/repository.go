package address

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Address, error)
	Save(ctx context.Context, userID string, addr Address) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetByUserID returns the profile address, or nil when the user has none.
func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByUserID"),
		zap.String("user_id", userID),
	)

	const q = `
		SELECT street, city, state, zip_code, country
		FROM users
		WHERE id = $1
	`

	var street, city, state, zip, country sql.NullString
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&street, &city, &state, &zip, &country)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	a := Address{
		Street:  street.String,
		City:    city.String,
		State:   state.String,
		ZipCode: zip.String,
		Country: country.String,
	}
	if !a.IsComplete() {
		return nil, nil
	}

	return &a, nil
}

func (r *repository) Save(
	ctx context.Context,
	userID string,
	addr Address,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Save"),
		zap.String("user_id", userID),
	)

	const q = `
		UPDATE users
		SET street = $1,
		    city = $2,
		    state = $3,
		    zip_code = $4,
		    country = $5,
		    updated_at = NOW()
		WHERE id = $6
	`

	res, err := r.db.ExecContext(ctx, q,
		addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country,
		userID,
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
