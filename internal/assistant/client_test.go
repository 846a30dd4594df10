package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) (*Client, *[]time.Duration) {
	c := NewClient("test-key", "test-model", baseURL)
	sleeps := &[]time.Duration{}
	c.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	c.jitter = func() time.Duration { return 0 }
	return c, sleeps
}

func generateBody(text string) string {
	resp := generateResponse{}
	resp.Candidates = append(resp.Candidates, struct {
		Content content `json:"content"`
	}{Content: content{Parts: []part{{Text: text}}}})
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestDraftFollowUp_Success(t *testing.T) {
	var gotPath string
	var gotReq generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(generateBody("Dear Hiring Team,")))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	text, err := c.DraftFollowUp(context.Background(), DraftRequest{
		Title:   "Backend Engineer",
		Company: "Acme",
		Status:  "Applied",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Team,", text)

	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	require.Len(t, gotReq.Contents, 1)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "Backend Engineer")
	require.NotNil(t, gotReq.SystemInstruction)
	assert.Contains(t, gotReq.SystemInstruction.Parts[0].Text, "career coach")
}

func TestDraftFollowUp_RetriesOnRateLimit(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(generateBody("Thank you for your time.")))
	}))
	defer server.Close()

	c, sleeps := newTestClient(server.URL)
	text, err := c.DraftFollowUp(context.Background(), DraftRequest{Title: "SRE", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Thank you for your time.", text)

	assert.Equal(t, 3, attempts)
	// Doubling backoff between attempts.
	require.Len(t, *sleeps, 2)
	assert.Equal(t, 1*time.Second, (*sleeps)[0])
	assert.Equal(t, 2*time.Second, (*sleeps)[1])
}

func TestDraftFollowUp_RateLimitExhausted(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c, sleeps := newTestClient(server.URL)
	_, err := c.DraftFollowUp(context.Background(), DraftRequest{Title: "SRE", Company: "Acme"})
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Len(t, *sleeps, 2)
}

func TestDraftFollowUp_NoRetryOnOtherErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, sleeps := newTestClient(server.URL)
	_, err := c.DraftFollowUp(context.Background(), DraftRequest{Title: "SRE", Company: "Acme"})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *sleeps)
}

func TestDraftFollowUp_EmptyContentFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	text, err := c.DraftFollowUp(context.Background(), DraftRequest{Title: "SRE", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, fallbackDraft, text)
}

func TestBuildPrompt_DefaultNotes(t *testing.T) {
	prompt := buildPrompt(DraftRequest{Title: "SRE", Company: "Acme", Status: "Rejected"})
	assert.Contains(t, prompt, "No specific notes recorded.")
	assert.Contains(t, prompt, `"Rejected"`)
}
