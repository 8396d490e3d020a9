package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/prefs"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewWithDB(sqlx.NewDb(db, driverName)), mock
}

func TestListPokemonCountError(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("database is locked"))

	_, err := s.ListPokemon(context.Background(), domain.ListQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count pokemon")
	assert.Contains(t, err.Error(), "database is locked")
}

func TestAddReviewInsertError(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(25).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO reviews").WillReturnError(errors.New("disk I/O error"))

	_, err := s.AddReview(context.Background(), reviewFor(25))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add review")
}

func TestPrefsGetError(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery("SELECT value FROM prefs").WithArgs(prefs.KeyUserID).
		WillReturnError(errors.New("corrupt"))

	_, ok, err := s.Prefs("x").Get(context.Background(), prefs.Browser, prefs.KeyUserID)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestSeedRollsBackOnError(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO pokemon").WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	_, err := s.ImportSeed(context.Background(),
		strings.NewReader("pokemon:\n  - {id: 1, name: bulbasaur, types: [grass]}\n"), SeedOptions{Format: SeedYAML})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert id 1")
}
