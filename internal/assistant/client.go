package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash-preview-05-20"

	// maxAttempts bounds the rate-limit retry loop: one call plus two
	// retries with doubling backoff.
	maxAttempts   = 3
	backoffBase   = 1 * time.Second
	maxJitter     = 1 * time.Second
	clientTimeout = 30 * time.Second

	// fallbackDraft is returned when the endpoint answers successfully but
	// with no generated content.
	fallbackDraft = "Could not generate email draft."
)

// DraftRequest carries the application fields the prompt is built from.
type DraftRequest struct {
	Title   string
	Company string
	Status  string
	Notes   string
}

// Client calls the generative-text endpoint to draft follow-up emails.
// Output is display-only; the client never touches persisted data.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter

	// sleep and jitter are swapped out in tests for a fake clock.
	sleep  func(time.Duration)
	jitter func() time.Duration
}

// NewClient creates a draft assistant client. Empty model or baseURL select
// the defaults.
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: clientTimeout},
		limiter:    rate.NewLimiter(rate.Limit(1), 3),
		sleep:      time.Sleep,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(maxJitter)))
		},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// DraftFollowUp requests a follow-up email body. A rate-limited response
// (HTTP 429) is retried up to two more times with exponential backoff plus
// random jitter; any other failure surfaces immediately.
func (c *Client) DraftFollowUp(ctx context.Context, req DraftRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	payload := generateRequest{
		Contents:          []content{{Parts: []part{{Text: buildPrompt(req)}}}},
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal draft request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return "", fmt.Errorf("call generative endpoint: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxAttempts-1 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			c.sleep(backoffBase*(1<<attempt) + c.jitter())
			continue
		}

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return "", fmt.Errorf("generative endpoint returned status %d", resp.StatusCode)
		}

		var out generateResponse
		err = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("decode draft response: %w", err)
		}

		text := ""
		if len(out.Candidates) > 0 && len(out.Candidates[0].Content.Parts) > 0 {
			text = out.Candidates[0].Content.Parts[0].Text
		}
		if text == "" {
			return fallbackDraft, nil
		}
		return text, nil
	}

	// Unreachable: the final attempt always returns above.
	return "", fmt.Errorf("generative endpoint rate limited after %d attempts", maxAttempts)
}
