package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "mfippa.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.CreateSchema())
	return db
}

func TestUsers(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateUser("coordinator", "hash", RoleAdmin)
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = db.CreateUser("coordinator", "hash2", RoleViewer)
	assert.ErrorIs(t, err, ErrUserTaken)

	_, err = db.CreateUser("x", "hash", "root")
	assert.Error(t, err)

	u, hash, err := db.GetUserByUsername("coordinator")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, "hash", hash)
	assert.False(t, u.CreatedAt.IsZero())

	_, _, err = db.GetUserByUsername("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessions(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreateUser("clerk", "hash", RoleViewer)
	require.NoError(t, err)

	require.NoError(t, db.CreateSession(id, "live", time.Now().Add(time.Hour)))
	require.NoError(t, db.CreateSession(id, "stale", time.Now().Add(-time.Hour)))

	u, err := db.GetSession("live")
	require.NoError(t, err)
	assert.Equal(t, "clerk", u.Username)

	_, err = db.GetSession("stale")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := db.PurgeExpiredSessions(time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, db.DeleteSession("live"))
	assert.ErrorIs(t, db.DeleteSession("live"), ErrNotFound)
	_, err = db.GetSession("live")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurgeExpiredSessions_SubSecondOrder(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreateUser("clerk", "hash", RoleViewer)
	require.NoError(t, err)

	sec := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, db.CreateSession(id, "whole-second", sec))
	require.NoError(t, db.CreateSession(id, "half-past", sec.Add(500*time.Millisecond)))

	// at the whole second only the first session has expired
	n, err := db.PurgeExpiredSessions(sec)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = db.PurgeExpiredSessions(sec.Add(250 * time.Millisecond))
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = db.PurgeExpiredSessions(sec.Add(500 * time.Millisecond))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStampIsFixedWidth(t *testing.T) {
	whole := stamp(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC))
	frac := stamp(time.Date(2030, 1, 2, 3, 4, 5, 120, time.UTC))
	assert.Equal(t, "2030-01-02T03:04:05.000000000Z", whole)
	assert.Len(t, frac, len(whole))
	assert.Less(t, whole, frac)
	assert.True(t, parseTS(frac).Equal(time.Date(2030, 1, 2, 3, 4, 5, 120, time.UTC)))
}

func TestAudit(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.LogAudit("clerk", "login", "", map[string]any{"ip": "127.0.0.1"}))
	require.NoError(t, db.LogAudit("clerk", "analyze", "/api/v1/analyze", map[string]any{"length": 42}))

	entries, err := db.ListAudit(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "analyze", entries[0].Action)
	assert.Equal(t, "/api/v1/analyze", entries[0].Resource)
	assert.EqualValues(t, 42, entries[0].Meta["length"])
	assert.Equal(t, "login", entries[1].Action)
}
