// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/quangoinc/qscore/internal/app/store/oauthstate"
	userstore "github.com/quangoinc/qscore/internal/app/store/users"
	"github.com/quangoinc/qscore/internal/app/system/auth"
	"github.com/quangoinc/qscore/internal/app/system/normalize"
	"github.com/quangoinc/qscore/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler handles Google OAuth authentication. Sign-in is the only way
// into the app: any Google account on the allowed domain becomes a team
// member on first callback.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	StateStore *oauthstate.Store
	Users      *userstore.Store

	// OAuth configuration
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "https://qscore.quangoinc.com/auth/google/callback"

	// AllowedDomain gates sign-in to one Google Workspace domain.
	// Empty allows any verified Google account.
	AllowedDomain string
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(
	sessionMgr *auth.SessionManager,
	stateStore *oauthstate.Store,
	users *userstore.Store,
	clientID, clientSecret, baseURL, allowedDomain string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:           logger,
		SessionMgr:    sessionMgr,
		StateStore:    stateStore,
		Users:         users,
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		RedirectURL:   baseURL + "/auth/google/callback",
		AllowedDomain: strings.ToLower(strings.TrimSpace(allowedDomain)),
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
| Initiates the Google OAuth flow by redirecting to Google's consent screen.   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/?error=internal", http.StatusSeeOther)
		return
	}

	returnURL := query.Get(r, "return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// State lives 10 minutes; the TTL index prunes strays.
	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.StateStore.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		http.Redirect(w, r, "/?error=internal", http.StatusSeeOther)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state)

	h.Log.Debug("initiating Google OAuth flow",
		zap.String("redirect_url", url),
		zap.String("return_url", returnURL))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
| Handles the OAuth callback from Google, exchanges code for tokens,           |
| fetches user info, gates on the allowed domain, upserts the member,          |
| and creates the session.                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		errDesc := r.URL.Query().Get("error_description")
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", errDesc))
		http.Redirect(w, r, "/?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/?error=invalid_state", http.StatusSeeOther)
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/?error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/?error=user_info", http.StatusSeeOther)
		return
	}

	email := normalize.Email(googleUser.Email)

	h.Log.Debug("Google user info fetched",
		zap.String("email", email),
		zap.String("name", googleUser.Name))

	if !googleUser.EmailVerified {
		h.Log.Warn("Google account email not verified", zap.String("email", email))
		http.Redirect(w, r, "/?error=email_not_verified", http.StatusSeeOther)
		return
	}

	if !h.DomainAllowed(email) {
		h.Log.Info("sign-in rejected: email outside allowed domain",
			zap.String("email", email),
			zap.String("allowed_domain", h.AllowedDomain))
		http.Redirect(w, r, "/?error=domain_not_allowed", http.StatusSeeOther)
		return
	}

	member, err := h.Users.UpsertOnSignIn(ctxTimeout, email, googleUser.Name)
	if err != nil {
		h.Log.Error("failed to upsert member on sign-in", zap.Error(err), zap.String("email", email))
		http.Redirect(w, r, "/?error=internal", http.StatusSeeOther)
		return
	}

	if err := h.SessionMgr.CreateSession(w, r, &auth.SessionUser{
		Email: member.ID,
		Name:  member.Name,
	}); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("email", email))
		http.Redirect(w, r, "/?error=session", http.StatusSeeOther)
		return
	}

	h.Log.Info("member signed in via Google OAuth",
		zap.String("email", member.ID),
		zap.String("name", member.Name))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/"), http.StatusSeeOther)
}

// DomainAllowed reports whether the email passes the domain gate.
func (h *Handler) DomainAllowed(email string) bool {
	if h.AllowedDomain == "" {
		return true
	}
	return strings.HasSuffix(email, "@"+h.AllowedDomain)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
