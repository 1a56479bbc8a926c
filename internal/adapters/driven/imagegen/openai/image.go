// Package openai provides an image generation adapter using the OpenAI
// images API. A reference image turns a generation into an edit, which
// keeps regenerated views stylistically consistent.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
	"github.com/stitchworks/techpack-cli/internal/logger"
)

// Ensure ImageGenerator implements the interface.
var _ driven.ImageGenerator = (*ImageGenerator)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-image-1"
	DefaultTimeout = 180 * time.Second

	// maxAttempts bounds transient-failure retries per request.
	maxAttempts = 3
)

// Config holds configuration for the image generator.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the image model to use (default: gpt-image-1).
	Model string

	// Timeout is the request timeout (default: 180s).
	Timeout time.Duration

	// RateLimit bounds the sustained request rate.
	RateLimit RateLimitConfig
}

// ImageGenerator renders product view imagery using the OpenAI API.
type ImageGenerator struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	limiter *rateLimiter
}

// imageResponse is the images API response format.
type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewImageGenerator creates a new OpenAI image generator.
func NewImageGenerator(cfg Config) (*ImageGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("imagegen: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &ImageGenerator{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		limiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// Generate renders an image for the prompt. When referenceURL is set the
// referenced image is fetched and sent to the edits endpoint; otherwise a
// fresh generation runs. Transient failures are retried a bounded number
// of times.
func (g *ImageGenerator) Generate(ctx context.Context, prompt, referenceURL string) ([]byte, error) {
	var reference []byte
	if referenceURL != "" {
		data, err := fetchReference(ctx, g.client, referenceURL)
		if err != nil {
			// A stale reference should not kill the generation; fall
			// back to a prompt-only render.
			logger.Warn("imagegen: reference %s unavailable: %v", referenceURL, err)
		} else {
			reference = data
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		data, retryable, err := g.request(ctx, prompt, reference)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		logger.Debug("imagegen: attempt %d/%d failed: %v", attempt, maxAttempts, err)
	}
	return nil, fmt.Errorf("imagegen: giving up after %d attempts: %w", maxAttempts, lastErr)
}

// request performs one API call. It reports whether a failure is worth
// retrying (429 or 5xx).
func (g *ImageGenerator) request(ctx context.Context, prompt string, reference []byte) (data []byte, retryable bool, err error) {
	var req *http.Request
	if len(reference) > 0 {
		req, err = g.editRequest(ctx, prompt, reference)
	} else {
		req, err = g.generateRequest(ctx, prompt)
	}
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		g.limiter.recordRateLimitError(retryAfter)
		return nil, true, fmt.Errorf("imagegen: rate limited (status 429)")
	}

	var imgResp imageResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	if imgResp.Error != nil {
		return nil, resp.StatusCode >= 500, fmt.Errorf("imagegen error: %s", imgResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= 500, fmt.Errorf("imagegen error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(imgResp.Data) == 0 {
		return nil, false, fmt.Errorf("imagegen: no image data returned")
	}

	decoded, err := base64.StdEncoding.DecodeString(imgResp.Data[0].B64JSON)
	if err != nil {
		return nil, false, fmt.Errorf("decode image data: %w", err)
	}
	return decoded, false, nil
}

// generateRequest builds a prompt-only /images/generations call.
func (g *ImageGenerator) generateRequest(ctx context.Context, prompt string) (*http.Request, error) {
	payload := map[string]any{
		"model":  g.model,
		"prompt": prompt,
		"n":      1,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/images/generations", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// editRequest builds a multipart /images/edits call carrying the
// reference image.
func (g *ImageGenerator) editRequest(ctx context.Context, prompt string, reference []byte) (*http.Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image", "reference.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(reference); err != nil {
		return nil, fmt.Errorf("write reference image: %w", err)
	}
	if err := w.WriteField("model", g.model); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if err := w.WriteField("prompt", prompt); err != nil {
		return nil, fmt.Errorf("write prompt field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/images/edits", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

// fetchReference loads the reference image from a file path, file:// URL,
// or HTTP(S) URL.
func fetchReference(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch reference: status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	case strings.HasPrefix(url, "file://"):
		return os.ReadFile(strings.TrimPrefix(url, "file://"))
	default:
		return os.ReadFile(url)
	}
}

// ModelName returns the name of the image model being used.
func (g *ImageGenerator) ModelName() string {
	return g.model
}

// Ping validates the service is reachable by checking the /models endpoint.
func (g *ImageGenerator) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("imagegen: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("imagegen: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("imagegen: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (g *ImageGenerator) Close() error {
	return nil
}
