package summarizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/config"

	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// ErrSummarizeFailed covers every summarization failure the caller might see:
// rate limits, network errors, content policy refusals, empty responses.
var ErrSummarizeFailed = errors.New("summarization failed")

// Summarizer turns a long text into a shorter one.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// generateRequest mirrors the generateContent wire format of the
// generative-language API.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type geminiSummarizer struct {
	model      string
	apiKey     string
	httpClient *resty.Client
	rl         ratelimit.Limiter
}

// New creates a Summarizer backed by a Gemini-style generative-text API.
// Calls are throttled client-side to stay under the service quota.
func New(cfg config.SummarizerConfig) Summarizer {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")

	perMinute := cfg.RequestsPerMinute
	if perMinute < 1 {
		perMinute = 15
	}

	return &geminiSummarizer{
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		rl:         ratelimit.New(perMinute, ratelimit.Per(time.Minute)),
	}
}

// Summarize asks the generative model for a summary of text.
func (s *geminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	s.rl.Take()

	request := generateRequest{
		Contents: []content{{
			Parts: []part{{Text: fmt.Sprintf("Summarize the following: %s", text)}},
		}},
	}

	var body generateResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetBody(request).
		SetResult(&body).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", s.model))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarizeFailed, err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("%w: unexpected status %d", ErrSummarizeFailed, resp.StatusCode())
	}

	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrSummarizeFailed)
	}

	return body.Candidates[0].Content.Parts[0].Text, nil
}
