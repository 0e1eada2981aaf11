// Package openrouter dispatches single chat completion calls to the
// OpenRouter routing API and normalizes every outcome into a Result.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/modelrace/modelrace/internal/logx"
	"github.com/modelrace/modelrace/internal/metrics"
)

// DefaultBaseURL is the OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Client issues one-shot chat completion requests. One attempt per call:
// no retries, no backoff, no rate limiting.
type Client struct {
	BaseURL    string
	Referer    string
	Title      string
	httpClient *http.Client
}

// New creates a client with the given per-call timeout. A zero timeout
// falls back to 60 seconds.
func New(baseURL, referer, title string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL:    baseURL,
		Referer:    referer,
		Title:      title,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Complete performs one POST to the chat completions endpoint and returns
// a Result. Every failure mode is folded into the Result; Complete never
// panics and never returns an error to the caller.
func (c *Client) Complete(ctx context.Context, apiKey string, req Request) Result {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return c.fail(req.Model, Result{Err: fmt.Sprintf("failed to marshal request: %v", err)})
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return c.fail(req.Model, Result{Err: fmt.Sprintf("failed to create request: %v", err)})
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	if c.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.Title != "" {
		httpReq.Header.Set("X-Title", c.Title)
	}
	reqID := uuid.NewString()
	httpReq.Header.Set("X-Request-Id", reqID)

	logx.Log.Debug().Str("request_id", reqID).Str("model", req.Model).Int("max_tokens", req.MaxTokens).Msg("dispatch")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Transport-level failures report no elapsed time; the call never
		// produced an HTTP response.
		logx.Log.Warn().Str("request_id", reqID).Str("model", req.Model).Err(err).Msg("request failed")
		return c.fail(req.Model, Result{Err: fmt.Sprintf("request failed: %v", err)})
	}
	elapsed := time.Since(start).Seconds()
	respBody, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return c.fail(req.Model, Result{Err: fmt.Sprintf("failed to read response: %v", readErr), Elapsed: elapsed, StatusCode: resp.StatusCode})
	}

	if resp.StatusCode != http.StatusOK {
		logx.Log.Warn().Str("request_id", reqID).Str("model", req.Model).Int("status", resp.StatusCode).Msg("api error")
		return c.fail(req.Model, Result{
			Err:        fmt.Sprintf("Error %d: %s", resp.StatusCode, string(respBody)),
			Elapsed:    elapsed,
			StatusCode: resp.StatusCode,
			RawBody:    string(respBody),
		})
	}

	var decoded chatCompletionResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return c.fail(req.Model, Result{Err: fmt.Sprintf("failed to parse response: %v", err), Elapsed: elapsed, RawBody: string(respBody)})
	}
	if len(decoded.Choices) == 0 {
		return c.fail(req.Model, Result{Err: "failed to parse response: no choices", Elapsed: elapsed, RawBody: string(respBody)})
	}
	if decoded.Choices[0].Message.Content == nil {
		return c.fail(req.Model, Result{Err: "failed to parse response: missing message content", Elapsed: elapsed, RawBody: string(respBody)})
	}

	content := *decoded.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		content = EmptyResponsePlaceholder
	}

	res := Result{
		OK:        true,
		Text:      content,
		Elapsed:   elapsed,
		WordCount: len(strings.Fields(content)),
		CharCount: utf8.RuneCountInString(content),
		Raw:       json.RawMessage(respBody),
	}
	if elapsed > 0 {
		res.WordsPerSecond = float64(res.WordCount) / elapsed
	}

	logx.Log.Info().Str("request_id", reqID).Str("model", req.Model).Float64("elapsed_s", elapsed).Int("words", res.WordCount).Msg("complete")
	metrics.RecordDispatch(req.Model, true)
	metrics.ObserveDispatchDuration(req.Model, elapsed)
	metrics.ObserveWordsPerSecond(req.Model, res.WordsPerSecond)
	return res
}

func (c *Client) fail(model string, r Result) Result {
	metrics.RecordDispatch(model, false)
	if r.Elapsed > 0 {
		metrics.ObserveDispatchDuration(model, r.Elapsed)
	}
	return r
}
