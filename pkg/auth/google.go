package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kalendo/kalendo/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const nonceValidity = 10 * time.Minute

// GoogleAuth implements provider sign-in via the Google OAuth code flow.
// Only the userinfo email and profile are requested; the session issued at the
// end is the same kind as for password sign-in.
type GoogleAuth struct {
	sessions    *Service
	oauthConfig *oauth2.Config

	mu     sync.Mutex
	nonces map[string]time.Time
}

func NewGoogleAuth(sessions *Service, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Auth.Google.ClientId,
		ClientSecret: cfg.Auth.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/auth/google/callback",
		Scopes:       []string{oauth2api.UserinfoEmailScope, oauth2api.UserinfoProfileScope},
	}

	return &GoogleAuth{
		sessions:    sessions,
		oauthConfig: oauthConfig,
		nonces:      make(map[string]time.Time),
	}
}

// OAuthLogin sends the browser to the Google consent screen with a state nonce.
func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	stateNonce := uuid.New().String()

	g.mu.Lock()
	for nonce, issued := range g.nonces {
		if time.Since(issued) > nonceValidity {
			delete(g.nonces, nonce)
		}
	}
	g.nonces[stateNonce] = time.Now()
	g.mu.Unlock()

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	http.Redirect(w, r, g.oauthConfig.AuthCodeURL(stateNonce), http.StatusFound)
}

// OAuthCallback exchanges the code, reads the account email from the userinfo
// endpoint and issues a session cookie before redirecting to the calendar.
func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	if !g.consumeNonce(state) {
		log.Errorf("unknown or expired OAuth state nonce")
		http.Redirect(w, r, "/login?error=google", http.StatusFound)
		return
	}

	ctx := r.Context()
	token, err := g.oauthConfig.Exchange(ctx, code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, "/login?error=google", http.StatusFound)
		return
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(g.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		log.Errorf("unable to create userinfo client: %v", err)
		http.Redirect(w, r, "/login?error=google", http.StatusFound)
		return
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil || info.Email == "" {
		log.Errorf("unable to fetch userinfo: %v", err)
		http.Redirect(w, r, "/login?error=google", http.StatusFound)
		return
	}

	session, err := g.sessions.SignInProviderUser(ctx, info.Email, info.Name)
	if err != nil {
		log.Errorf("unable to sign in Google user: %v", err)
		http.Redirect(w, r, "/login?error=google", http.StatusFound)
		return
	}

	setSessionCookie(w, session.Token, g.sessions.validity)
	http.Redirect(w, r, "/calendar", http.StatusFound)
}

func (g *GoogleAuth) consumeNonce(nonce string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	issued, ok := g.nonces[nonce]
	if !ok {
		return false
	}
	delete(g.nonces, nonce)
	return time.Since(issued) <= nonceValidity
}
