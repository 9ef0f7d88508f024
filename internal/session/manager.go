package session

import (
	"context"
	"strings"

	"catalyster/internal/api"
	"catalyster/internal/domain"
)

// Result is the discriminated outcome of login and signup. These operations
// never surface a Go error for credential failures; callers branch on
// Success and show Error.
type Result struct {
	Success bool
	Error   string
	User    *domain.User
}

// Manager performs the auth API calls and keeps the Store in sync.
type Manager struct {
	client *api.Client
	store  *Store
}

// NewManager wires the auth operations to a client and a store.
func NewManager(client *api.Client, store *Store) *Manager {
	return &Manager{client: client, store: store}
}

// Store exposes the underlying session store.
func (m *Manager) Store() *Store {
	return m.store
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
}

// Login exchanges credentials for a token and user descriptor and persists
// both. Subsequent calls through the shared client carry the token.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Result{Error: "username and password are required"}
	}

	var resp loginResponse
	err := m.client.Post(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return Result{Error: api.ErrorMessage(err)}
	}
	if resp.AccessToken == "" {
		return Result{Error: "login response missing access token"}
	}
	if err := m.store.Set(resp.AccessToken, resp.User); err != nil {
		return Result{Error: "failed to persist session: " + err.Error()}
	}
	return Result{Success: true, User: resp.User}
}

// SignupParams carries the registration form fields.
type SignupParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Signup registers a new account. It does not authenticate; the caller
// logs in afterwards.
func (m *Manager) Signup(ctx context.Context, p SignupParams) Result {
	if !ValidUsername(p.Username) {
		return Result{Error: "username must be 3-30 characters"}
	}
	if !ValidEmail(p.Email) {
		return Result{Error: "a valid email is required"}
	}
	if !ValidPassword(p.Password) {
		return Result{Error: "password must be at least 8 characters"}
	}
	if p.Password != p.ConfirmPassword {
		return Result{Error: "passwords do not match"}
	}

	var user domain.User
	err := m.client.Post(ctx, "/auth/register", map[string]string{
		"username":        p.Username,
		"email":           p.Email,
		"password":        p.Password,
		"confirmPassword": p.ConfirmPassword,
	}, &user)
	if err != nil {
		return Result{Error: api.ErrorMessage(err)}
	}
	return Result{Success: true, User: &user}
}

// Logout tells the backend best-effort, then clears persisted state
// unconditionally. An unreachable backend still logs the user out locally.
func (m *Manager) Logout(ctx context.Context) {
	if m.store.Authenticated() {
		_ = m.client.Post(ctx, "/auth/logout", nil, nil)
	}
	m.store.Clear()
}

// Validate asks the backend whether the stored token is still accepted.
func (m *Manager) Validate(ctx context.Context) error {
	if !m.store.Authenticated() {
		return domain.ErrNoSession
	}
	return m.client.Get(ctx, "/auth/validate", nil, nil)
}

// Refresh exchanges the current token for a fresh one and persists it.
func (m *Manager) Refresh(ctx context.Context) error {
	if !m.store.Authenticated() {
		return domain.ErrNoSession
	}
	var resp loginResponse
	if err := m.client.Post(ctx, "/auth/refresh", nil, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return domain.ErrUnauthorized
	}
	return m.store.SetToken(resp.AccessToken)
}
