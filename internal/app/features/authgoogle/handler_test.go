package authgoogle_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/quangoinc/qscore/internal/app/features/authgoogle"
	"github.com/quangoinc/qscore/internal/app/store/oauthstate"
	userstore "github.com/quangoinc/qscore/internal/app/store/users"
	"github.com/quangoinc/qscore/internal/app/system/auth"
	"github.com/quangoinc/qscore/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, clientID, clientSecret string) *authgoogle.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	return authgoogle.NewHandler(
		sessionMgr,
		oauthstate.New(db),
		userstore.New(db),
		clientID,
		clientSecret,
		"http://localhost:8080",
		"quangoinc.com",
		logger,
	)
}

func TestIsConfigured(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")
	if !h.IsConfigured() {
		t.Error("IsConfigured() should return true with client ID and secret")
	}
}

func TestIsConfigured_NotConfigured(t *testing.T) {
	h := newTestHandler(t, "", "")
	if h.IsConfigured() {
		t.Error("IsConfigured() should return false without client ID and secret")
	}
}

func TestServeLogin_NotConfigured_Redirects(t *testing.T) {
	h := newTestHandler(t, "", "")

	req := testutil.NewRequest("GET", "/auth/google")
	rec := testutil.NewRecorder()

	h.ServeLogin(rec, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=google_not_configured") {
		t.Errorf("Location = %q, want not-configured error", loc)
	}
}

func TestServeLogin_RedirectsToGoogle(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := testutil.NewRequest("GET", "/auth/google")
	rec := testutil.NewRecorder()

	h.ServeLogin(rec, req)

	rec.AssertStatus(t, http.StatusTemporaryRedirect)
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "accounts.google.com") {
		t.Errorf("Location = %q, want Google consent screen", loc)
	}
	if !strings.Contains(loc, "state=") {
		t.Errorf("Location = %q, want a state parameter", loc)
	}
}

func TestServeCallback_MissingState(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := testutil.NewRequest("GET", "/auth/google/callback?code=abc")
	rec := testutil.NewRecorder()

	h.ServeCallback(rec, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=invalid_state") {
		t.Errorf("Location = %q, want invalid_state error", loc)
	}
}

func TestServeCallback_UnknownState(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := testutil.NewRequest("GET", "/auth/google/callback?state=never-saved&code=abc")
	rec := testutil.NewRecorder()

	h.ServeCallback(rec, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=invalid_state") {
		t.Errorf("Location = %q, want invalid_state error", loc)
	}
}

func TestServeCallback_ProviderError(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := testutil.NewRequest("GET", "/auth/google/callback?error=access_denied")
	rec := testutil.NewRecorder()

	h.ServeCallback(rec, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=google_denied") {
		t.Errorf("Location = %q, want google_denied error", loc)
	}
}

func TestDomainAllowed(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	tests := []struct {
		email string
		want  bool
	}{
		{"alex@quangoinc.com", true},
		{"alex@gmail.com", false},
		{"alex@quangoinc.com.evil.example", false},
		{"quangoinc.com@gmail.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := h.DomainAllowed(tt.email); got != tt.want {
				t.Errorf("DomainAllowed(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
