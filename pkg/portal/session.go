package portal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
)

// AuthResult reports the outcome of an auth operation. It is always
// returned, never an error: failed credentials, expired tokens and
// unreachable servers all land in Message with OK false.
type AuthResult struct {
	OK      bool
	User    *models.User
	Message string
}

// SessionManager owns the client's auth lifecycle: restoring a persisted
// token on startup, logging in and out, and keeping the current user.
type SessionManager struct {
	client *Client
	store  TokenStore

	mu   sync.Mutex
	user *models.User
}

func NewSessionManager(client *Client, store TokenStore) *SessionManager {
	sm := &SessionManager{client: client, store: store}
	client.OnUnauthorized = sm.dropSession
	return sm
}

// CurrentUser returns the signed-in user, or nil when signed out.
func (sm *SessionManager) CurrentUser() *models.User {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.user
}

// Bootstrap restores a persisted session. A token that the server rejects
// is discarded; a server that cannot be reached leaves the token in place
// so a later Bootstrap can try again.
func (sm *SessionManager) Bootstrap(ctx context.Context) AuthResult {
	token, err := sm.store.Load()
	if err != nil {
		return AuthResult{Message: "failed to read stored session: " + err.Error()}
	}
	if token == "" {
		return AuthResult{Message: "no stored session"}
	}

	sm.client.SetToken(token)

	var user models.User
	if err := sm.client.getJSON(ctx, "/auth/profile", nil, &user); err != nil {
		if apperrors.IsAuthError(err) {
			// handleUnauthorized already cleared the client token.
			_ = sm.store.Clear()
			return AuthResult{Message: "stored session is no longer valid"}
		}
		sm.client.ClearToken()
		return AuthResult{Message: "could not verify session: " + err.Error()}
	}

	sm.setUser(&user)
	return AuthResult{OK: true, User: &user}
}

// Login exchanges credentials for a session and persists the token.
func (sm *SessionManager) Login(ctx context.Context, email, password string) AuthResult {
	req := dto.LoginRequest{Email: email, Password: password}

	var resp dto.AuthResponse
	if err := sm.client.postJSON(ctx, "/auth/login", req, &resp); err != nil {
		return AuthResult{Message: authMessage(err, "login failed")}
	}
	return sm.establish(resp)
}

// Register creates an account and signs it in. The server only accepts
// applicant and employer roles here.
func (sm *SessionManager) Register(ctx context.Context, name, email, password, role string) AuthResult {
	req := dto.RegisterRequest{Name: name, Email: email, Password: password, Role: role}

	var resp dto.AuthResponse
	if err := sm.client.postJSON(ctx, "/auth/register", req, &resp); err != nil {
		return AuthResult{Message: authMessage(err, "registration failed")}
	}
	return sm.establish(resp)
}

// Logout ends the session. The server call is best effort; local state is
// always cleared.
func (sm *SessionManager) Logout(ctx context.Context) {
	_ = sm.client.postJSON(ctx, "/auth/logout", nil, nil)
	sm.dropSession()
	sm.client.ClearToken()
}

func (sm *SessionManager) establish(resp dto.AuthResponse) AuthResult {
	if resp.Token == "" || resp.User == nil {
		return AuthResult{Message: "malformed auth response"}
	}
	sm.client.SetToken(resp.Token)
	if err := sm.store.Save(resp.Token); err != nil {
		// A session that cannot be persisted is not established: a held
		// token with no current user would be half a session.
		sm.client.ClearToken()
		return AuthResult{Message: "failed to persist session: " + err.Error()}
	}
	sm.setUser(resp.User)
	return AuthResult{OK: true, User: resp.User}
}

func (sm *SessionManager) setUser(u *models.User) {
	sm.mu.Lock()
	sm.user = u
	sm.mu.Unlock()
}

func (sm *SessionManager) dropSession() {
	sm.setUser(nil)
	_ = sm.store.Clear()
}

func authMessage(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.HTTPCode {
		case http.StatusUnauthorized, http.StatusBadRequest, http.StatusConflict:
			return appErr.Message
		}
	}
	return fallback + ": " + err.Error()
}
