package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mascotacare/vetcli/internal/model"
)

func testUser() *model.User {
	return &model.User{ID: 7, Username: "clara", Role: model.RoleVet, FullName: "Clara Ruiz"}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSessionHolder(t *testing.T) {
	s := New()
	assert.False(t, s.LoggedIn())
	assert.Nil(t, s.User())

	s.Set(testUser(), "tok")
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, "clara", s.User().Username)

	s.Clear()
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())
}

func TestExpired(t *testing.T) {
	now := time.Now()
	clock := func() int64 { return now.Unix() }

	s := New()
	assert.True(t, s.Expired(clock), "empty session is expired")

	s.Set(testUser(), signedToken(t, now.Add(time.Hour)))
	assert.False(t, s.Expired(clock))

	s.Set(testUser(), signedToken(t, now.Add(-time.Minute)))
	assert.True(t, s.Expired(clock))

	// Opaque tokens are deferred to the backend.
	s.Set(testUser(), "not-a-jwt")
	assert.False(t, s.Expired(clock))
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session")
	store, err := NewStore(path, "machine-secret")
	require.NoError(t, err)

	s := New()
	s.Set(testUser(), "bearer-token")
	require.NoError(t, store.Save(s))

	// The file must not leak the token in the clear.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bearer-token")

	loaded := New()
	require.NoError(t, store.Load(loaded))
	assert.True(t, loaded.LoggedIn())
	assert.Equal(t, "bearer-token", loaded.Token())
	assert.Equal(t, "Clara Ruiz", loaded.User().FullName)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "absent"), "secret")
	require.NoError(t, err)

	s := New()
	require.NoError(t, store.Load(s))
	assert.False(t, s.LoggedIn())
}

func TestStoreWrongKeyActsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")

	first, err := NewStore(path, "secret-a")
	require.NoError(t, err)
	s := New()
	s.Set(testUser(), "tok")
	require.NoError(t, first.Save(s))

	second, err := NewStore(path, "secret-b")
	require.NoError(t, err)
	loaded := New()
	require.NoError(t, second.Load(loaded))
	assert.False(t, loaded.LoggedIn())
}

func TestStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	store, err := NewStore(path, "secret")
	require.NoError(t, err)

	s := New()
	s.Set(testUser(), "tok")
	require.NoError(t, store.Save(s))
	require.NoError(t, store.Delete())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Deleting twice is fine.
	require.NoError(t, store.Delete())
}

func TestStoreRejectsEmptySecret(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "session"), "")
	assert.Error(t, err)
}
