package hosted

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"equine-clinic/internal/platform/httpclient"
	"equine-clinic/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("hosted auth not configured")
	ErrUnauthorized  = errors.New("hosted auth: invalid credentials")
	ErrUpstream      = errors.New("hosted auth upstream error")
)

const tokenPath = "/auth/v1/token"

// Config del proveedor hospedado. BaseURL y APIKey vienen de AUTH_HOSTED_*.
type Config struct {
	BaseURL string
	APIKey  string

	// Header de la api key. Vacío => "apikey".
	APIKeyHeader string

	Timeout   time.Duration
	Transport http.RoundTripper // tests
}

// Client implementa auth.IdentityProvider contra el endpoint de password grant.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	key := strings.TrimSpace(cfg.APIKey)
	if base == "" || key == "" {
		return nil, ErrNotConfigured
	}
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "apikey"
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   base,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
		Headers:   map[string]string{h: key},
	})
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	if c == nil || c.http == nil {
		return auth.Identity{}, ErrNotConfigured
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return auth.Identity{}, ErrUnauthorized
	}

	var out tokenResponse
	err := c.http.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Query:  url.Values{"grant_type": {"password"}},
		Body:   map[string]string{"email": email, "password": password},
	}, &out)
	switch status := httpclient.StatusCode(err); {
	case err == nil:
	case status == http.StatusBadRequest, status == http.StatusUnauthorized, status == http.StatusForbidden:
		return auth.Identity{}, ErrUnauthorized
	default:
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.User.ID = strings.TrimSpace(out.User.ID)
	if out.User.ID == "" {
		return auth.Identity{}, fmt.Errorf("%w: response missing user id", ErrUpstream)
	}
	if out.User.Email == "" {
		out.User.Email = email
	}
	return auth.Identity{Subject: out.User.ID, Email: strings.TrimSpace(out.User.Email)}, nil
}
