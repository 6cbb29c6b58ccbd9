package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_AppliesMigrations(t *testing.T) {
	db := setupDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='local_storage'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "local_storage", name)
}

func TestOpen_IsIdempotentOnFile(t *testing.T) {
	path := t.TempDir() + "/client.db"
	ctx := context.Background()

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(db).Set(ctx, "token", []byte("abc")))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v, err := NewSQLiteRepository(db).Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
}

func TestOpen_CreatesMissingDirectories(t *testing.T) {
	path := t.TempDir() + "/nested/state/client.db"

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", nil))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM local_storage WHERE key = 'k' AND value IS NOT NULL`).Scan(&n))
	assert.Equal(t, 1, n)

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestRepository_DriverErrorsWrapped(t *testing.T) {
	boom := errors.New("disk I/O error")

	tests := []struct {
		name   string
		expect func(m sqlmock.Sqlmock)
		call   func(r *SQLiteRepository) error
		want   string
	}{
		{
			name:   "get",
			expect: func(m sqlmock.Sqlmock) { m.ExpectQuery(`SELECT value FROM local_storage`).WillReturnError(boom) },
			call: func(r *SQLiteRepository) error {
				_, err := r.Get(context.Background(), "k")
				return err
			},
			want: "failed to get local_storage[k]",
		},
		{
			name:   "set",
			expect: func(m sqlmock.Sqlmock) { m.ExpectExec(`INSERT INTO local_storage`).WillReturnError(boom) },
			call:   func(r *SQLiteRepository) error { return r.Set(context.Background(), "k", []byte("v")) },
			want:   "failed to set local_storage[k]",
		},
		{
			name:   "delete",
			expect: func(m sqlmock.Sqlmock) { m.ExpectExec(`DELETE FROM local_storage WHERE key`).WillReturnError(boom) },
			call:   func(r *SQLiteRepository) error { return r.Delete(context.Background(), "k") },
			want:   "failed to delete local_storage[k]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			tt.expect(mock)
			err = tt.call(NewSQLiteRepository(db))

			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), tt.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
