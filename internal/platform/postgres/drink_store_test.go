package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

func newMockDrinkStore(t *testing.T) (*PostgresDrinkStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresDrinkStore(db, nil), mock
}

func drinkRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "recipe"})
}

func TestPostgresDrinkStore_List(t *testing.T) {
	s, mock := newMockDrinkStore(t)

	mock.ExpectQuery("SELECT id, title, recipe FROM drinks ORDER BY id").
		WillReturnRows(drinkRows().
			AddRow(1, "water", `[{"name":"water","color":"blue","parts":1}]`).
			AddRow(2, "matcha shake", `[{"name":"milk","color":"grey","parts":1},{"name":"matcha","color":"green","parts":3}]`))

	got, err := s.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []domain.Ingredient{{Name: "water", Color: "blue", Parts: 1}}, got[0].Recipe)
	assert.Len(t, got[1].Recipe, 2)
}

func TestPostgresDrinkStore_ListCorruptRecipe(t *testing.T) {
	s, mock := newMockDrinkStore(t)

	mock.ExpectQuery("FROM drinks").WillReturnRows(drinkRows().AddRow(1, "broken", "{not json"))

	_, err := s.List(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
}

func TestPostgresDrinkStore_GetByID(t *testing.T) {
	s, mock := newMockDrinkStore(t)

	mock.ExpectQuery("FROM drinks WHERE id").WithArgs(8).WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), 8)

	assert.ErrorIs(t, err, store.ErrDrinkNotFound)
}

func TestPostgresDrinkStore_CountByTitle(t *testing.T) {
	s, mock := newMockDrinkStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM drinks WHERE title = $1")).
		WithArgs("water").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := s.CountByTitle(context.Background(), "water")

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostgresDrinkStore_Create(t *testing.T) {
	recipe := []domain.Ingredient{{Name: "water", Color: "blue", Parts: 1}}

	t.Run("inserted", func(t *testing.T) {
		s, mock := newMockDrinkStore(t)
		mock.ExpectQuery("INSERT INTO drinks").
			WithArgs("water", `[{"name":"water","color":"blue","parts":1}]`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		d := &domain.Drink{Title: "water", Recipe: recipe}
		require.NoError(t, s.Create(context.Background(), d))
		assert.Equal(t, 1, d.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate title", func(t *testing.T) {
		s, mock := newMockDrinkStore(t)
		mock.ExpectQuery("INSERT INTO drinks").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "drinks_title_key"})

		err := s.Create(context.Background(), &domain.Drink{Title: "water", Recipe: recipe})
		assert.ErrorIs(t, err, store.ErrTitleExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})
}

func TestPostgresDrinkStore_Update(t *testing.T) {
	d := &domain.Drink{ID: 3, Title: "tea", Recipe: []domain.Ingredient{{Name: "tea", Color: "brown", Parts: 2}}}

	t.Run("updated", func(t *testing.T) {
		s, mock := newMockDrinkStore(t)
		mock.ExpectExec("UPDATE drinks SET title").
			WithArgs("tea", `[{"name":"tea","color":"brown","parts":2}]`, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Update(context.Background(), d))
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := newMockDrinkStore(t)
		mock.ExpectExec("UPDATE drinks").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(context.Background(), d), store.ErrDrinkNotFound)
	})

	t.Run("collision", func(t *testing.T) {
		s, mock := newMockDrinkStore(t)
		mock.ExpectExec("UPDATE drinks").WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		assert.ErrorIs(t, s.Update(context.Background(), d), store.ErrTitleExists)
	})
}

func TestPostgresDrinkStore_Delete(t *testing.T) {
	s, mock := newMockDrinkStore(t)

	mock.ExpectExec("DELETE FROM drinks").WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM drinks").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM drinks").WithArgs(4).WillReturnError(errors.New("connection reset"))

	assert.NoError(t, s.Delete(context.Background(), 2))
	assert.ErrorIs(t, s.Delete(context.Background(), 3), store.ErrDrinkNotFound)
	err := s.Delete(context.Background(), 4)
	assert.Error(t, err)
	assert.False(t, store.IsNotFoundError(err))
}

func TestPostgresDrinkStore_Reset(t *testing.T) {
	s, mock := newMockDrinkStore(t)

	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE drinks RESTART IDENTITY")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Reset(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
