package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chickhealth-client-go/internal/api"
)

// fakeBackend speaks just enough of the API for session tests: form login
// and a token-gated profile endpoint.
type fakeBackend struct {
	validToken string
	meCalls    atomic.Int64
	rejectMe   atomic.Bool
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostFormValue("username") != "ba@farm.vn" || r.PostFormValue("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Incorrect email or password"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"` + b.validToken + `","token_type":"bearer","user_role":"farmer","user_name":"Anh Ba"}`))
	})
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		b.meCalls.Add(1)
		if b.rejectMe.Load() || r.Header.Get("Authorization") != "Bearer "+b.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"email":"ba@farm.vn","full_name":"Anh Ba","phone":"0900000000","is_active":true,"is_superuser":false}`))
	})
	return mux
}

func newTestManager(t *testing.T, backend *fakeBackend, store Store) *Manager {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	manager := NewManager(store, nil)
	client := api.New(server.URL, api.Options{
		Tokens:         manager,
		OnUnauthorized: manager.Invalidate,
	})
	manager.Bind(client)
	return manager
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestRestoreWithValidToken(t *testing.T) {
	backend := &fakeBackend{validToken: signedToken(t, time.Now().Add(time.Hour))}
	store := &MemoryStore{}
	require.NoError(t, store.Save(backend.validToken))

	manager := newTestManager(t, backend, store)
	require.NoError(t, manager.Restore(context.Background()))

	assert.True(t, manager.Authenticated())
	assert.False(t, manager.Loading())
	require.NotNil(t, manager.User())
	assert.Equal(t, "Anh Ba", manager.User().FullName)
}

func TestRestoreWithNoTokenStaysOffline(t *testing.T) {
	backend := &fakeBackend{validToken: "tok"}
	manager := newTestManager(t, backend, &MemoryStore{})

	require.NoError(t, manager.Restore(context.Background()))
	assert.False(t, manager.Authenticated())
	assert.Equal(t, int64(0), backend.meCalls.Load())
}

func TestRestoreDiscardsExpiredTokenWithoutNetwork(t *testing.T) {
	backend := &fakeBackend{validToken: "tok"}
	store := &MemoryStore{}
	require.NoError(t, store.Save(signedToken(t, time.Now().Add(-time.Hour))))

	manager := newTestManager(t, backend, store)
	require.NoError(t, manager.Restore(context.Background()))

	assert.False(t, manager.Authenticated())
	assert.Equal(t, int64(0), backend.meCalls.Load())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestRestoreClearsRejectedToken(t *testing.T) {
	backend := &fakeBackend{validToken: "good"}
	store := &MemoryStore{}
	require.NoError(t, store.Save(signedToken(t, time.Now().Add(time.Hour))))

	manager := newTestManager(t, backend, store)
	require.NoError(t, manager.Restore(context.Background()))

	assert.False(t, manager.Authenticated())
	assert.Empty(t, manager.Token())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestLoginPersistsTokenOnlyAfterProfileFetch(t *testing.T) {
	backend := &fakeBackend{validToken: signedToken(t, time.Now().Add(time.Hour))}
	store := &MemoryStore{}
	manager := newTestManager(t, backend, store)

	require.NoError(t, manager.Login(context.Background(), "ba@farm.vn", "secret"))
	assert.True(t, manager.Authenticated())
	stored, _ := store.Load()
	assert.Equal(t, backend.validToken, stored)
}

func TestLoginFailedProfileFetchLeavesNothingBehind(t *testing.T) {
	backend := &fakeBackend{validToken: signedToken(t, time.Now().Add(time.Hour))}
	backend.rejectMe.Store(true)
	store := &MemoryStore{}
	manager := newTestManager(t, backend, store)

	err := manager.Login(context.Background(), "ba@farm.vn", "secret")
	require.Error(t, err)
	assert.False(t, manager.Authenticated())
	assert.Empty(t, manager.Token())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestLoginBadCredentials(t *testing.T) {
	backend := &fakeBackend{validToken: "tok"}
	manager := newTestManager(t, backend, &MemoryStore{})

	err := manager.Login(context.Background(), "ba@farm.vn", "wrong")
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.False(t, manager.Authenticated())
}

func TestUnauthorizedMidSessionInvalidates(t *testing.T) {
	backend := &fakeBackend{validToken: signedToken(t, time.Now().Add(time.Hour))}
	store := &MemoryStore{}
	manager := newTestManager(t, backend, store)
	require.NoError(t, manager.Login(context.Background(), "ba@farm.vn", "secret"))

	// Backend starts rejecting the token mid-session; the next call must
	// tear the whole session down.
	backend.rejectMe.Store(true)
	require.NoError(t, manager.Restore(context.Background()))

	assert.False(t, manager.Authenticated())
	assert.Empty(t, manager.Token())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestLogoutClearsStoreAndMemory(t *testing.T) {
	backend := &fakeBackend{validToken: signedToken(t, time.Now().Add(time.Hour))}
	store := &MemoryStore{}
	manager := newTestManager(t, backend, store)
	require.NoError(t, manager.Login(context.Background(), "ba@farm.vn", "secret"))

	require.NoError(t, manager.Logout())
	assert.False(t, manager.Authenticated())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := FileStore{Path: t.TempDir() + "/nested/token"}

	// Missing file reads as empty, not as an error.
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("abc"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
