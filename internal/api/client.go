package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/mascotacare/vetcli/internal/session"
	"github.com/mascotacare/vetcli/pkg/circuitbreaker"
	apperr "github.com/mascotacare/vetcli/pkg/errors"
)

var validate = validator.New()

const (
	defaultTimeout = 15 * time.Second

	// listTTL keeps list endpoints snappy across consecutive commands
	// in the interactive assistant without risking stale views for long.
	listTTL = 30 * time.Second

	cacheKeyPatients   = "patients"
	cacheKeyAssistants = "assistants"
	cacheKeyUsers      = "users"
)

// Config carries the client's connection parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the typed REST client for the treatment-tracking backend.
// All authenticated calls carry the session's bearer token and a fresh
// request id; non-2xx responses map onto the AppError taxonomy.
type Client struct {
	http    *http.Client
	baseURL string
	session *session.Session
	log     zerolog.Logger
	breaker *circuitbreaker.CircuitBreaker
	cache   *gocache.Cache
}

func New(cfg Config, sess *session.Session, log zerolog.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api: base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("api: invalid base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: base,
		session: sess,
		log:     log.With().Str("component", "api").Logger(),
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name: "backend",
			// Only transport failures and 5xx answers say anything
			// about the backend's health; a 404 on a typo'd id must
			// never block valid calls.
			ShouldTrip: func(err error) bool {
				return apperr.CodeOf(err) == apperr.ErrNetwork
			},
		}),
		cache: gocache.New(listTTL, time.Minute),
	}, nil
}

// doJSON performs one call against the backend. in may be nil (no
// body), url.Values (form-encoded, used by login) or any JSON-encodable
// value. out may be nil when the response body is irrelevant.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	return c.breaker.Execute(func() error {
		return c.roundTrip(ctx, method, path, in, out)
	})
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	switch v := in.(type) {
	case nil:
	case url.Values:
		body = strings.NewReader(v.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return apperr.Internal(fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperr.Internal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return apperr.Network("no se pudo contactar al servidor", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		err := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
		return apperr.FromStatus(resp.StatusCode, path, err)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.BadResponse("respuesta inesperada del servidor", err)
	}
	return nil
}

func (c *Client) invalidateLists() {
	c.cache.Delete(cacheKeyPatients)
	c.cache.Delete(cacheKeyAssistants)
	c.cache.Delete(cacheKeyUsers)
}
