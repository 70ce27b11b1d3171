package cart

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	cols := []string{"id", "name", "image", "price", "quantity"}

	t.Run("ShellEntryForMissingProduct", func(t *testing.T) {
		mock.ExpectQuery(`FROM cart_items ci LEFT JOIN products p ON p.id::text = ci.product_id WHERE ci.user_id = \$1 ORDER BY ci.position ASC`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("p1", "Mug", "mug.png", 10.5, 2).
				AddRow(nil, "", "", 0.0, 1))

		entries, err := repo.GetCart(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "p1", *entries[0].ID)
		assert.Equal(t, 10.5, entries[0].Price)
		assert.Nil(t, entries[1].ID)
		assert.Equal(t, 1, entries[1].Quantity)
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery(`FROM cart_items`).WillReturnError(errors.New("db error"))

		_, err := repo.GetCart(ctx, "u1")
		assert.ErrorIs(t, err, ErrFailedGetCart)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("LocksUserAndRewrites", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM users WHERE id = \$1 FOR UPDATE`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u1"))
		mock.ExpectQuery(`SELECT product_id, quantity FROM cart_items WHERE user_id = \$1 ORDER BY position ASC`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).
				AddRow("p1", 1).
				AddRow("p2", 3))
		mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1`).
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO cart_items \(user_id, product_id, quantity, position\)`).
			WithArgs("u1", "p1", 3, 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO cart_items`).
			WithArgs("u1", "p2", 3, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		var seen []Item
		err := repo.UpdateCart(ctx, "u1", func(stored []Item) []Item {
			seen = stored
			return Merge(stored, []Item{{"p1", 2}})
		})

		require.NoError(t, err)
		assert.Equal(t, []Item{{"p1", 1}, {"p2", 3}}, seen)
	})

	t.Run("UserMissing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("u9").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.UpdateCart(ctx, "u9", func(s []Item) []Item { return s })
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("InsertFailureRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u1"))
		mock.ExpectQuery(`SELECT product_id, quantity FROM cart_items`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}))
		mock.ExpectExec(`DELETE FROM cart_items`).
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO cart_items`).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		err := repo.UpdateCart(ctx, "u1", func([]Item) []Item { return []Item{{"p1", 5}} })
		assert.ErrorIs(t, err, ErrFailedUpdateCart)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
