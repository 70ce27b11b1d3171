package coupon

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const couponID = "3c2b1a09-8f7e-4d6c-9b5a-445566778899"

var couponCols = []string{"id", "code", "discount", "expiration_date", "is_active", "created_by", "created_at", "updated_at"}

func TestRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`FROM coupons WHERE code = \$1`).
			WithArgs("SAVE10").
			WillReturnRows(sqlmock.NewRows(couponCols).
				AddRow(couponID, "SAVE10", 10.0, now.Add(time.Hour), true, "u1", now, now))

		c, err := repo.GetByCode(ctx, "SAVE10")
		require.NoError(t, err)
		assert.Equal(t, 10.0, c.Discount)
		assert.True(t, c.IsActive)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(`FROM coupons WHERE code = \$1`).
			WithArgs("NOPE").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()
	exp := now.Add(24 * time.Hour)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO coupons \(code, discount, expiration_date, is_active, created_by\)`).
			WithArgs("SAVE10", 10.0, exp, true, "u1").
			WillReturnRows(sqlmock.NewRows(couponCols).
				AddRow(couponID, "SAVE10", 10.0, exp, true, "u1", now, now))

		c, err := repo.Create(ctx, &Coupon{Code: "SAVE10", Discount: 10, ExpirationDate: exp, IsActive: true, CreatedBy: "u1"})
		require.NoError(t, err)
		assert.Equal(t, couponID, c.ID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO coupons`).WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, &Coupon{Code: "SAVE10", ExpirationDate: exp})
		assert.ErrorIs(t, err, ErrCodeExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("UpdateMissing", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE coupons SET code = \$1`).WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(ctx, &Coupon{ID: couponID, Code: "X"})
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM coupons WHERE id = \$1`).
			WithArgs(couponID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, couponID), ErrCouponNotFound)
	})

	t.Run("MalformedID", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "abc")
		assert.ErrorIs(t, err, ErrCouponNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "abc"), ErrCouponNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
