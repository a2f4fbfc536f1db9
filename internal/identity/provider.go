package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/resumedash/internal/metrics"
	"golang.org/x/oauth2"
)

const (
	DefaultRolesClaim = "https://auth.empowertech.be/roles"
	// RefreshWindow renews tokens slightly before they expire.
	RefreshWindow = 60 * time.Second
)

var (
	ErrNoRefreshToken = errors.New("identity: no refresh token")
	ErrMissingIDToken = errors.New("identity: token response has no id_token")
)

var defaultScopes = []string{"openid", "profile", "email", "offline_access"}

type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Audience     string
	Scopes       []string
	RolesClaim   string
	LogoutURL    string
}

// Provider talks to the identity provider's authorize and token endpoints.
type Provider struct {
	cfg   Config
	oauth *oauth2.Config
	now   func() time.Time
}

func NewProvider(cfg Config) (*Provider, error) {
	issuer := strings.TrimSpace(cfg.IssuerURL)
	if issuer == "" {
		return nil, errors.New("identity: issuer url is required")
	}
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, errors.New("identity: client id is required")
	}
	if !strings.HasSuffix(issuer, "/") {
		issuer += "/"
	}
	cfg.IssuerURL = issuer
	if cfg.RolesClaim == "" {
		cfg.RolesClaim = DefaultRolesClaim
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = defaultScopes
	}

	return &Provider{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  issuer + "authorize",
				TokenURL: issuer + "oauth/token",
			},
		},
		now: time.Now,
	}, nil
}

// NewState returns a random value for the OAuth state parameter.
func NewState() string {
	return uuid.NewString()
}

// AuthCodeURL is where the browser is sent to sign in.
func (p *Provider) AuthCodeURL(state string) string {
	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOffline}
	if p.cfg.Audience != "" {
		opts = append(opts, oauth2.SetAuthURLParam("audience", p.cfg.Audience))
	}
	return p.oauth.AuthCodeURL(state, opts...)
}

// Exchange trades the callback code for tokens and builds a new session.
func (p *Provider) Exchange(ctx context.Context, code string) (*Session, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	session := &Session{ID: uuid.NewString(), CreatedAt: p.now()}
	session.SetToken(tok)
	if session.IDToken == "" {
		return nil, ErrMissingIDToken
	}
	if err := p.applyClaims(session); err != nil {
		return nil, err
	}
	return session, nil
}

// NeedsRefresh reports whether the access token is expired or about to be.
func (p *Provider) NeedsRefresh(s *Session) bool {
	if s.Expiry.IsZero() {
		return false
	}
	return !p.now().Add(RefreshWindow).Before(s.Expiry)
}

// Refresh renews the session's tokens in place.
func (p *Provider) Refresh(ctx context.Context, s *Session) (err error) {
	defer func() { metrics.IncrementTokenRefresh(err) }()

	if s.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	// an expired token forces the source to hit the token endpoint
	stale := &oauth2.Token{RefreshToken: s.RefreshToken, Expiry: p.now().Add(-time.Minute)}
	tok, err := p.oauth.TokenSource(ctx, stale).Token()
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}

	previousIDToken := s.IDToken
	s.SetToken(tok)
	if s.IDToken != previousIDToken {
		return p.applyClaims(s)
	}
	return nil
}

// LogoutURL ends the provider session and returns the browser to returnTo.
func (p *Provider) LogoutURL(returnTo string) string {
	if p.cfg.LogoutURL != "" {
		return p.cfg.LogoutURL
	}
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	if returnTo != "" {
		q.Set("returnTo", returnTo)
	}
	return p.cfg.IssuerURL + "v2/logout?" + q.Encode()
}

// applyClaims reads subject, email and roles from the ID token. The token
// comes straight from the token endpoint over TLS so its signature is not
// checked again here.
func (p *Provider) applyClaims(s *Session) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.IDToken, claims); err != nil {
		return fmt.Errorf("parse id token: %w", err)
	}

	if sub, err := claims.GetSubject(); err == nil {
		s.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	s.Roles = stringList(claims[p.cfg.RolesClaim])
	return nil
}

func stringList(v any) []string {
	switch value := v.(type) {
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return value
	case string:
		if value == "" {
			return nil
		}
		return []string{value}
	default:
		return nil
	}
}
