package attend

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// SessionState names the manager's position in its lifecycle.
type SessionState string

const (
	StateResolving     SessionState = "resolving"
	StateAuthenticated SessionState = "authenticated"
	StateAnonymous     SessionState = "anonymous"
)

// Session is an immutable snapshot of the current auth state. User is
// present if and only if the last-seen token decoded successfully and was
// unexpired at decode time. Loading is true only until the initial
// resolution completes.
type Session struct {
	User    *Claims
	Loading bool
}

// Authenticated reports whether the snapshot carries a user.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Manager owns the current-user state derived from the stored token. It
// starts Resolving, resolves the stored token exactly once off the caller's
// path, and afterwards moves between Authenticated and Anonymous through
// Login, Logout, and the api client's 401 reaction.
type Manager struct {
	store   TokenStore
	decoder *TokenDecoder
	login   LoginService
	logger  Logger
	now     func() time.Time

	mu      sync.Mutex
	user    *Claims
	loading bool

	startOnce sync.Once
	readyOnce sync.Once
	ready     chan struct{}
}

// NewManager returns a Manager in the Resolving state. Call Start to kick
// off the initial token resolution.
func NewManager(store TokenStore) *Manager {
	return &Manager{
		store:   store,
		decoder: NewTokenDecoder(nil),
		logger:  defLogger{},
		now:     time.Now,
		loading: true,
		ready:   make(chan struct{}),
	}
}

func (m *Manager) WithLogger(logger Logger) *Manager {
	m.logger = logger
	m.decoder = NewTokenDecoder(logger)
	return m
}

// WithLoginService wires the backend login call, normally *client.Client.
func (m *Manager) WithLoginService(login LoginService) *Manager {
	m.login = login
	return m
}

// WithClock overrides the wall clock used for expiry checks.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Start schedules the one-shot initial resolution without blocking the
// caller. Safe to call more than once; only the first call resolves.
func (m *Manager) Start() {
	m.startOnce.Do(func() {
		go m.resolve()
	})
}

// WaitReady blocks until the initial resolution has completed or ctx ends.
// The guard relies on this barrier: no non-loading decision is rendered
// before resolution finishes.
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "session resolution interrupted")
	}
}

// Session returns the current snapshot.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Session{User: m.user, Loading: m.loading}
}

// State reports the lifecycle state implied by the current snapshot.
func (m *Manager) State() SessionState {
	s := m.Session()
	switch {
	case s.Loading:
		return StateResolving
	case s.User != nil:
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}

// Login verifies credentials against the backend, persists the issued token,
// and moves the session to Authenticated. The returned role picks the
// post-login landing. On failure the session state is unchanged and the
// error carries the server's message, or the generic login fallback.
func (m *Manager) Login(ctx context.Context, email, password string) (Role, error) {
	if m.login == nil {
		return "", goerrors.New("login service is required", goerrors.CategoryBadInput)
	}

	result, err := m.login.Login(ctx, email, password)
	if err != nil {
		m.logger.Error("Login request failed: %v", err)
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Message != "" {
			return "", err
		}
		return "", goerrors.Wrap(err, ErrLoginFailed.Category, ErrLoginFailed.Message).
			WithTextCode(ErrLoginFailed.TextCode)
	}

	claims, err := m.decoder.Decode(result.Token)
	if err != nil {
		m.logger.Error("Login returned an undecodable token: %v", err)
		return "", err
	}

	// A token that is already stale would be cleared on the very next
	// resolution; reject it here instead of authenticating for one beat.
	if claims.ExpiredAt(m.now()) {
		m.logger.Error("Login returned an already expired token for %s", claims.UserID())
		return "", ErrTokenExpired
	}

	if err := m.store.Set(result.Token); err != nil {
		m.logger.Error("Login failed to persist token: %v", err)
		return "", err
	}

	m.setUser(claims)
	m.finishResolve()

	m.logger.Info("Login succeeded for %s as %s", claims.UserID(), claims.UserRole)
	return claims.Role(), nil
}

// Logout clears the stored token and lands Anonymous. Safe to call when
// already anonymous.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("Logout failed to clear token store: %v", err)
	}
	m.setUser(nil)
	m.finishResolve()
}

// Invalidate is the 401 path: any operation that sees an unauthorized
// response forces the same clear-and-transition as Logout, even though it is
// initiated from outside the manager.
func (m *Manager) Invalidate() {
	m.logger.Info("Session invalidated by unauthorized response")
	m.Logout()
}

func (m *Manager) resolve() {
	defer m.finishResolve()

	token, ok := m.store.Get()
	if !ok {
		m.setUser(nil)
		return
	}

	claims, err := m.decoder.Decode(token)
	if err != nil {
		m.logger.Warn("Stored token failed decode, clearing: %v", err)
		m.clearToken()
		return
	}

	if claims.ExpiredAt(m.now()) {
		m.logger.Info("Stored token expired for %s, clearing", claims.UserID())
		m.clearToken()
		return
	}

	m.setUser(claims)
}

func (m *Manager) clearToken() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("Failed to clear token store: %v", err)
	}
	m.setUser(nil)
}

func (m *Manager) setUser(claims *Claims) {
	m.mu.Lock()
	m.user = claims
	m.mu.Unlock()
}

func (m *Manager) finishResolve() {
	m.readyOnce.Do(func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		close(m.ready)
	})
}
