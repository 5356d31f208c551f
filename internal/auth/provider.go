package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/tbourn/go-snitchon-backend/internal/config"
)

// Provider names.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// ErrUnknownProvider is returned for a provider name that is not configured.
var ErrUnknownProvider = errors.New("auth: unknown or disabled provider")

// Identity is the provider-side account that signed in.
type Identity struct {
	Provider string
	Subject  string
	Email    string
}

// Provider is one OAuth identity provider.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Identity, error)
}

// oauthProvider is the authorization code flow against a provider whose
// userinfo endpoint returns JSON.
type oauthProvider struct {
	name     string
	cfg      *oauth2.Config
	userInfo string
	decode   func(*json.Decoder) (Identity, error)
}

func (p *oauthProvider) Name() string { return p.name }

func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades code for an access token and fetches the account behind it.
func (p *oauthProvider) Exchange(ctx context.Context, code string) (Identity, error) {
	if code == "" {
		return Identity{}, errors.New("auth: missing authorization code")
	}
	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("auth: exchanging %s code: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfo, nil)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := p.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("auth: calling %s userinfo: %w", p.name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("auth: %s userinfo returned status %d", p.name, resp.StatusCode)
	}

	id, err := p.decode(json.NewDecoder(resp.Body))
	if err != nil {
		return Identity{}, fmt.Errorf("auth: decoding %s userinfo: %w", p.name, err)
	}
	if id.Subject == "" {
		return Identity{}, fmt.Errorf("auth: %s returned an account without id", p.name)
	}
	id.Provider = p.name
	return id, nil
}

// NewGoogle returns the Google provider.
func NewGoogle(c config.OAuthProvider) Provider {
	return &oauthProvider{
		name: ProviderGoogle,
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfo: "https://www.googleapis.com/oauth2/v2/userinfo",
		decode: func(d *json.Decoder) (Identity, error) {
			var u struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			}
			if err := d.Decode(&u); err != nil {
				return Identity{}, err
			}
			return Identity{Subject: u.ID, Email: u.Email}, nil
		},
	}
}

// NewGitHub returns the GitHub provider.
func NewGitHub(c config.OAuthProvider) Provider {
	return &oauthProvider{
		name: ProviderGitHub,
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		userInfo: "https://api.github.com/user",
		decode: func(d *json.Decoder) (Identity, error) {
			var u struct {
				ID    int64  `json:"id"`
				Email string `json:"email"`
			}
			if err := d.Decode(&u); err != nil {
				return Identity{}, err
			}
			if u.ID == 0 {
				return Identity{}, nil
			}
			return Identity{Subject: strconv.FormatInt(u.ID, 10), Email: u.Email}, nil
		},
	}
}

// ProvidersFromConfig returns every enabled provider keyed by name.
func ProvidersFromConfig(c config.AuthConfig) map[string]Provider {
	out := make(map[string]Provider, 2)
	if c.Google.Enabled() {
		out[ProviderGoogle] = NewGoogle(c.Google)
	}
	if c.GitHub.Enabled() {
		out[ProviderGitHub] = NewGitHub(c.GitHub)
	}
	return out
}
