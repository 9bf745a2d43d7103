package listing

import (
	"context"
	"errors"
	"testing"

	"pasarloka-be/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_OwnerAndStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("ItemSuccess", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "seller_id", "status", "title", "price"}).
			AddRow(id, 7, "active", "Used camera", "100.00")

		mock.ExpectQuery("SELECT .* FROM items WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(rows)

		s, err := repo.OwnerAndStatus(context.Background(), TargetItem, id)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), s.OwnerID)
		assert.Equal(t, StatusActive, s.Status)
		assert.Equal(t, TargetItem, s.Type)
	})

	t.Run("DemandSuccess", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "buyer_id", "status", "title", "price"}).
			AddRow(id, 9, "active", "Looking for a bike", "50.00")

		mock.ExpectQuery("SELECT .* FROM demands WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(rows)

		s, err := repo.OwnerAndStatus(context.Background(), TargetDemand, id)
		assert.NoError(t, err)
		assert.Equal(t, uint(9), s.OwnerID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM items WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "status", "title", "price"}))

		s, err := repo.OwnerAndStatus(context.Background(), TargetItem, id)
		assert.Nil(t, s)
		assert.True(t, apperr.IsKind(err, apperr.KindTargetNotFound))
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM demands WHERE id = \\$1").
			WithArgs(id).
			WillReturnError(errors.New("db error"))

		_, err := repo.OwnerAndStatus(context.Background(), TargetDemand, id)
		assert.Error(t, err)
		_, ok := apperr.KindOf(err)
		assert.False(t, ok, "infrastructure errors carry no business kind")
	})

	t.Run("InvalidType", func(t *testing.T) {
		_, err := repo.OwnerAndStatus(context.Background(), TargetType("service"), id)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}
