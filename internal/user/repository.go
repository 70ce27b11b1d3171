package user

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/address"
	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, name, email, password, role,
	street, city, state, zip_code, country,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var (
		u                                 User
		street, city, state, zip, country sql.NullString
	)
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role,
		&street, &city, &state, &zip, &country,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	addr := address.Address{
		Street:  street.String,
		City:    city.String,
		State:   state.String,
		ZipCode: zip.String,
		Country: country.String,
	}
	if addr.IsComplete() {
		u.Address = &addr
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func addressArgs(a *address.Address) []any {
	if a == nil {
		return []any{nil, nil, nil, nil, nil}
	}
	return []any{a.Street, a.City, a.State, a.ZipCode, a.Country}
}

func (r *repository) Create(ctx context.Context, u *User) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	q := `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, q, u.Name, u.Email, u.Password, u.Role))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		log.Error("failed to insert user", zap.String("email", u.Email), zap.Error(err))
		return nil, err
	}

	return created, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, q, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to find user by email",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to find user by id",
			zap.String("layer", "repository"),
			zap.String("user_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	q := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

// Update writes every mutable column of u.
func (r *repository) Update(ctx context.Context, u *User) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("user_id", u.ID),
	)

	q := `
		UPDATE users
		SET name = $1,
		    email = $2,
		    password = $3,
		    role = $4,
		    street = $5,
		    city = $6,
		    state = $7,
		    zip_code = $8,
		    country = $9,
		    updated_at = NOW()
		WHERE id = $10
		RETURNING ` + userColumns

	args := append([]any{u.Name, u.Email, u.Password, u.Role}, addressArgs(u.Address)...)
	args = append(args, u.ID)

	updated, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		log.Error("update failed", zap.Error(err))
		return nil, err
	}

	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("delete failed",
			zap.String("layer", "repository"),
			zap.String("user_id", id),
			zap.Error(err),
		)
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
