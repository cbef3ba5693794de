// Package genai is a minimal client for the generative-language API:
// one generateContent call per extraction request, tuned for
// deterministic output.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var (
	ErrNotConfigured = errors.New("genai client not configured")
	ErrUpstream      = errors.New("generative api error")
	ErrEmptyResponse = errors.New("generative api returned no candidates")
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string

	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int

	// RequestsPerMinute throttles extraction calls; zero disables the
	// limiter.
	RequestsPerMinute int

	Timeout time.Duration
}

type Client struct {
	baseURL string
	apiKey  string
	model   string
	genCfg  generationConfig

	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   cfg.Model,
		genCfg: generationConfig{
			Temperature:     cfg.Temperature,
			TopP:            cfg.TopP,
			TopK:            cfg.TopK,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		log:        log.With().Str("component", "genai").Logger(),
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != "" && c.model != ""
}

// GenerateText sends one prompt and returns the concatenated candidate
// text. Every failure collapses into a single upstream error class; the
// caller has no partial-result recovery anyway.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: c.genCfg,
		SafetySettings: []safetySetting{
			{
				Category:  "HARM_CATEGORY_DANGEROUS_CONTENT",
				Threshold: "BLOCK_MEDIUM_AND_ABOVE",
			},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Msg("generateContent failed")
		return "", fmt.Errorf("%w: status=%d", ErrUpstream, resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: invalid json: %v", ErrUpstream, err)
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	c.log.Debug().
		Dur("elapsed", time.Since(start)).
		Str("finish_reason", out.Candidates[0].FinishReason).
		Msg("generateContent ok")

	return sb.String(), nil
}
