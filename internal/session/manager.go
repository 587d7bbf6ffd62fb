package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"handmade-market/internal/logger"
	"handmade-market/internal/storage"
	"handmade-market/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Manager holds the signed-in identity of one storefront session and keeps
// it in the persistence adapter under the currentUser and jwtToken keys.
type Manager struct {
	mu     sync.RWMutex
	store  storage.Store
	client Client

	user  *user.User
	token string

	now func() time.Time
}

// NewManager restores a previously persisted session. An expired or
// unreadable session is discarded.
func NewManager(ctx context.Context, store storage.Store, client Client) (*Manager, error) {
	m := &Manager{store: store, client: client, now: time.Now}

	var (
		u     user.User
		token string
	)
	okUser, err := storage.LoadJSON(ctx, store, storage.KeyCurrentUser, &u)
	if err != nil {
		logger.FromCtx(ctx).Warn("discarding unreadable session user", zap.Error(err))
		okUser = false
	}
	okToken, err := storage.LoadJSON(ctx, store, storage.KeyToken, &token)
	if err != nil {
		logger.FromCtx(ctx).Warn("discarding unreadable session token", zap.Error(err))
		okToken = false
	}

	if okUser && okToken && !m.expired(token) {
		m.user, m.token = &u, token
		logger.FromCtx(ctx).Info("session restored", zap.String("user_id", u.ID))
		return m, nil
	}

	if okUser || okToken {
		if err := m.clear(ctx); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Current returns the signed-in user.
func (m *Manager) Current() (*user.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil, false
	}
	u := *m.user
	return &u, true
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Login reports false when the auth service refused the credentials or
// could not be reached. The cause is logged and returned for display.
func (m *Manager) Login(ctx context.Context, email, password string) (bool, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "session"), zap.String("method", "Login"))

	resp, err := m.client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		log.Warn("login failed", zap.Error(err))
		return false, err
	}
	if err := m.establish(ctx, resp); err != nil {
		log.Error("failed to persist session", zap.Error(err))
		return false, err
	}

	log.Info("logged in", zap.String("user_id", resp.User.ID))
	return true, nil
}

func (m *Manager) Register(ctx context.Context, in user.RegisterInput) (bool, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "session"), zap.String("method", "Register"))

	resp, err := m.client.Register(ctx, in)
	if err != nil {
		log.Warn("registration failed", zap.Error(err))
		return false, err
	}
	if err := m.establish(ctx, resp); err != nil {
		log.Error("failed to persist session", zap.Error(err))
		return false, err
	}

	log.Info("registered", zap.String("user_id", resp.User.ID), zap.String("role", resp.User.Role.String()))
	return true, nil
}

// UpdateProfile sends p to the auth service with the session token and
// refreshes the cached user. The token is replaced when a new one is issued.
func (m *Manager) UpdateProfile(ctx context.Context, p user.ProfileUpdate) (*user.User, error) {
	var resp AuthResponse
	err := m.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		resp, err = m.client.UpdateProfile(ctx, token, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	if resp.Token == "" {
		resp.Token = m.Token()
	}
	if err := m.establish(ctx, resp); err != nil {
		return nil, err
	}

	u := resp.User
	return &u, nil
}

// Do runs a protected call with the session token. A missing or expired
// token, or a 401/403 from the call, logs the session out and returns
// ErrSessionInvalid.
func (m *Manager) Do(ctx context.Context, call func(ctx context.Context, token string) error) error {
	token := m.Token()
	if token == "" || m.expired(token) {
		_ = m.Logout(ctx)
		return ErrSessionInvalid
	}

	err := call(ctx, token)
	if errors.Is(err, ErrUnauthorized) {
		logger.FromCtx(ctx).Warn("token rejected, forcing logout", zap.Error(err))
		_ = m.Logout(ctx)
		return errors.Join(ErrSessionInvalid, err)
	}
	return err
}

// Logout discards the token and cached user.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.clear(ctx); err != nil {
		logger.FromCtx(ctx).Error("failed to clear session", zap.Error(err))
		return err
	}
	logger.FromCtx(ctx).Info("logged out")
	return nil
}

func (m *Manager) establish(ctx context.Context, resp AuthResponse) error {
	if resp.Token == "" || resp.User.ID == "" {
		return ErrAuthFailed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := storage.SaveJSON(ctx, m.store, storage.KeyCurrentUser, resp.User); err != nil {
		return err
	}
	if err := storage.SaveJSON(ctx, m.store, storage.KeyToken, resp.Token); err != nil {
		return err
	}

	u := resp.User
	m.user, m.token = &u, resp.Token
	return nil
}

func (m *Manager) clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user, m.token = nil, ""
	if err := m.store.Remove(ctx, storage.KeyCurrentUser); err != nil {
		return err
	}
	return m.store.Remove(ctx, storage.KeyToken)
}

// expired reads the exp claim without verifying the signature; the auth
// service remains the authority. Tokens that are not JWTs never expire here.
func (m *Manager) expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !m.now().Before(claims.ExpiresAt.Time)
}
