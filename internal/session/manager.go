package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"chickhealth-client-go/internal/api"
)

// Manager owns the authentication lifecycle: Unauthenticated until Restore
// or Login succeeds, back to Unauthenticated on Logout or any 401. It is the
// client's TokenSource, so a session exists iff a token is held.
type Manager struct {
	store Store
	log   *zap.Logger

	mu      sync.RWMutex
	token   string
	user    *api.UserProfile
	loading bool

	client *api.Client
}

func NewManager(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log}
}

// Bind attaches the API client after construction; the client in turn is
// built with this manager as its TokenSource and 401 hook.
func (m *Manager) Bind(client *api.Client) {
	m.client = client
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns the profile, or nil while unauthenticated.
func (m *Manager) User() *api.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Loading is true only during Restore. Callers deciding which surface to
// show must wait for it to drop.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) Authenticated() bool {
	return m.User() != nil
}

// Restore runs once at startup: load the persisted token, discard it if the
// exp claim already passed, otherwise validate it with a profile fetch. A
// failed fetch clears the token and leaves the session unauthenticated.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	token, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("session: load token: %w", err)
	}
	if token == "" {
		return nil
	}
	if tokenExpired(token) {
		m.log.Info("stored token expired, discarding")
		_ = m.store.Clear()
		return nil
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	profile, err := m.client.Me(ctx)
	if err != nil {
		m.Invalidate()
		m.log.Info("stored token rejected, cleared", zap.Error(err))
		return nil
	}

	m.mu.Lock()
	m.user = &profile
	m.mu.Unlock()
	return nil
}

// Login exchanges credentials and establishes the session. The token is
// persisted only after the profile fetch succeeds, so a failed login never
// leaves a stuck invalid token behind.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	result, err := m.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.token = result.AccessToken
	m.mu.Unlock()

	profile, err := m.client.Me(ctx)
	if err != nil {
		m.mu.Lock()
		m.token = ""
		m.user = nil
		m.mu.Unlock()
		return fmt.Errorf("session: profile fetch after login: %w", err)
	}

	if err := m.store.Save(result.AccessToken); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	m.mu.Lock()
	m.user = &profile
	m.mu.Unlock()
	return nil
}

// Logout tears the session down in storage and memory together.
func (m *Manager) Logout() error {
	err := m.store.Clear()
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
	return err
}

// Invalidate is the unconditional 401 side effect: clear everything, no
// retry. Safe to call repeatedly.
func (m *Manager) Invalidate() {
	_ = m.store.Clear()
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
}

// tokenExpired peeks at the JWT exp claim without verifying the signature;
// verification is the backend's job. Opaque or claimless tokens are treated
// as live and left for the server to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
