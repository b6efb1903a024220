package pythonanywhere

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"bear-tracker/internal/platform/httpclient"
)

const (
	DefaultBaseURL = "https://www.pythonanywhere.com"
	DefaultTimeout = 30 * time.Second

	EnvUsername = "PA_USERNAME"
	EnvToken    = "API_TOKEN"
	EnvDomain   = "DOMAIN_NAME"
)

var (
	ErrMissingConfig = errors.New("pythonanywhere: missing configuration")
)

// Config del cliente del control plane de hosting.
type Config struct {
	BaseURL  string
	Username string
	Token    string
	Domain   string
	Timeout  time.Duration
}

// ConfigFromEnv lee PA_USERNAME, API_TOKEN y DOMAIN_NAME. Los tres son
// obligatorios: si falta alguno devuelve ErrMissingConfig con los nombres.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Username: strings.TrimSpace(os.Getenv(EnvUsername)),
		Token:    strings.TrimSpace(os.Getenv(EnvToken)),
		Domain:   strings.TrimSpace(os.Getenv(EnvDomain)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, EnvUsername)
	}
	if strings.TrimSpace(c.Token) == "" {
		missing = append(missing, EnvToken)
	}
	if strings.TrimSpace(c.Domain) == "" {
		missing = append(missing, EnvDomain)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

type Client struct {
	http     *httpclient.Client
	username string
	token    string
	domain   string
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc, err := httpclient.NewWithBaseURL(base, timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:     hc,
		username: strings.TrimSpace(cfg.Username),
		token:    strings.TrimSpace(cfg.Token),
		domain:   strings.TrimSpace(cfg.Domain),
	}, nil
}

// Domain es la webapp que recarga este cliente.
func (c *Client) Domain() string {
	return c.domain
}

// Reload pide al control plane que recargue la webapp.
// Éxito es exactamente 200; cualquier otro status vuelve como
// *httpclient.HTTPError con el body tal cual. No hay reintentos.
func (c *Client) Reload(ctx context.Context) error {
	path := fmt.Sprintf("/api/v0/user/%s/webapps/%s/reload/",
		url.PathEscape(c.username), url.PathEscape(c.domain))

	resp, err := c.http.Do(ctx, http.MethodPost, path, map[string]string{
		"Authorization": "Token " + c.token,
	}, nil)
	if err != nil {
		return fmt.Errorf("pythonanywhere reload: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &httpclient.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}
	return nil
}
