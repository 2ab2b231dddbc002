package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *RevocationStore) {
	t.Helper()
	store, err := OpenRevocationStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m, generated, err := NewManager(Options{
		Username: "admin",
		Password: "correct horse",
		Secret:   "test-secret",
		TTL:      time.Hour,
	}, store)
	require.NoError(t, err)
	assert.Empty(t, generated)
	return m, store
}

func TestLoginAndVerify(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Login("admin", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, s.Token)
	assert.Equal(t, "admin", s.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, 5*time.Second)

	got, err := m.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "admin", got.Username)
}

func TestLogin_Rejects(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = m.Login("root", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_RejectsTamperedAndForeignTokens(t *testing.T) {
	m, _ := newTestManager(t)
	s, err := m.Login("admin", "correct horse")
	require.NoError(t, err)

	_, err = m.Verify(s.Token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, _, err := NewManager(Options{Username: "admin", Password: "p", Secret: "another"}, nil)
	require.NoError(t, err)
	_, err = other.Verify(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	m, _ := newTestManager(t)
	s, err := m.Login("admin", "correct horse")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Verify(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesAndPrune(t *testing.T) {
	m, store := newTestManager(t)
	s, err := m.Login("admin", "correct horse")
	require.NoError(t, err)

	require.NoError(t, m.Logout(s))
	_, err = m.Verify(s.Token)
	assert.ErrorIs(t, err, ErrRevokedToken)

	// a fresh login is unaffected
	s2, err := m.Login("admin", "correct horse")
	require.NoError(t, err)
	_, err = m.Verify(s2.Token)
	require.NoError(t, err)

	n, err := m.PruneRevoked()
	require.NoError(t, err)
	assert.Zero(t, n, "entry still live")

	m.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	n, err = m.PruneRevoked()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	revoked, err := store.IsRevoked(s.ID)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestNewManager_PasswordSources(t *testing.T) {
	hash, err := HashPassword("from-hash")
	require.NoError(t, err)

	m, generated, err := NewManager(Options{Username: "admin", Password: "ignored", PasswordHash: hash}, nil)
	require.NoError(t, err)
	assert.Empty(t, generated)
	_, err = m.Login("admin", "from-hash")
	require.NoError(t, err)
	_, err = m.Login("admin", "ignored")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	m, generated, err = NewManager(Options{Username: "admin"}, nil)
	require.NoError(t, err)
	require.Len(t, generated, 16)
	_, err = m.Login("admin", generated)
	require.NoError(t, err)

	_, _, err = NewManager(Options{Username: "admin", PasswordHash: "plain"}, nil)
	require.Error(t, err)
	_, _, err = NewManager(Options{Username: " "}, nil)
	require.Error(t, err)
}
