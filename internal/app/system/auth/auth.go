// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// SessionUser is the signed-in member as carried in the request context.
// Identity is the Google account email; there are no roles, every member
// of the allowed domain has the same capabilities.
type SessionUser struct {
	Email string
	Name  string
}

type contextKey string

const userContextKey contextKey = "session_user"

// Session value keys.
const (
	keyAuthenticated = "is_authenticated"
	keyEmail         = "email"
	keyName          = "name"
)

// SessionManager wraps a gorilla cookie store and provides the session
// middleware used by every authenticated route.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager creates a SessionManager backed by a secure cookie
// store. The key must be at least 32 characters.
func NewSessionManager(key, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if len(key) < 32 {
		return nil, fmt.Errorf("session key must be at least 32 characters, got %d", len(key))
	}
	if name == "" {
		return nil, fmt.Errorf("session name must not be empty")
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{
		store: store,
		name:  name,
		log:   logger,
	}, nil
}

// Store exposes the underlying cookie store. Logout needs it to build a
// deletion cookie with matching options.
func (sm *SessionManager) Store() *sessions.CookieStore {
	return sm.store
}

// GetSession returns the session for the request, creating a fresh one
// when no valid cookie is present. A decode error is returned alongside
// a usable empty session.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// CreateSession marks the session authenticated for the given user and
// writes the cookie.
func (sm *SessionManager) CreateSession(w http.ResponseWriter, r *http.Request, user *SessionUser) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		// Decode failure means a stale or tampered cookie; the store
		// hands back a fresh session we can still use.
		sm.log.Warn("session decode failed, using fresh session", zap.Error(err))
	}

	sess.Values[keyAuthenticated] = true
	sess.Values[keyEmail] = user.Email
	sess.Values[keyName] = user.Name

	return sess.Save(r, w)
}

// ClearSession expires the session cookie.
func (sm *SessionManager) ClearSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session decode failed during clear", zap.Error(err))
	}

	if opts := sm.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1

	return sess.Save(r, w)
}

// LoadSessionUser reads the session cookie and, when it carries an
// authenticated user, places a SessionUser in the request context.
// It never rejects; RequireSignedIn does that.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.GetSession(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		authed, _ := sess.Values[keyAuthenticated].(bool)
		email, _ := sess.Values[keyEmail].(string)
		if !authed || email == "" {
			next.ServeHTTP(w, r)
			return
		}

		name, _ := sess.Values[keyName].(string)
		user := &SessionUser{Email: email, Name: name}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

// RequireSignedIn rejects requests without an authenticated user.
// API requests get a JSON 401; browser navigations are redirected to
// the Google sign-in entry point.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if wantsJSON(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not signed in"})
			return
		}

		http.Redirect(w, r, "/auth/google", http.StatusSeeOther)
	})
}

// CurrentUser returns the signed-in user from the request context.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*SessionUser)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// WithTestUser injects a SessionUser into the request context.
// Test-only; production requests go through LoadSessionUser.
func WithTestUser(r *http.Request, user *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
