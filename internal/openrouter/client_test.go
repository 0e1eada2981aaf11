package openrouter

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(url string) *Client {
	return New(url, "https://example.test/", "modelrace test", 5*time.Second)
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":    "gen-1",
		"model": "qwen/qwen3-32b",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
		"usage": map[string]int{"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12},
	})
	return string(b)
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth, gotReferer, gotTitle, gotReqID string
	var gotBody chatCompletionRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		gotReqID = r.Header.Get("X-Request-Id")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("hello brave new world")))
	}))
	defer ts.Close()

	res := testClient(ts.URL).Complete(context.Background(), "sk-test", Request{
		Model: "qwen/qwen3-32b", Prompt: "say hi", MaxTokens: 200, Temperature: 0.7,
	})
	if !res.OK {
		t.Fatalf("expected success: %+v", res)
	}
	if res.Text != "hello brave new world" {
		t.Fatalf("text %q", res.Text)
	}
	if res.WordCount != 4 || res.CharCount != 21 {
		t.Fatalf("counts %d %d", res.WordCount, res.CharCount)
	}
	if res.Elapsed <= 0 {
		t.Fatalf("elapsed %v", res.Elapsed)
	}
	if want := float64(res.WordCount) / res.Elapsed; math.Abs(res.WordsPerSecond-want) > 1e-9 {
		t.Fatalf("wps %v want %v", res.WordsPerSecond, want)
	}
	if len(res.Raw) == 0 || res.Err != "" || res.StatusCode != 0 {
		t.Fatalf("unexpected diagnostics %+v", res)
	}

	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth %q", gotAuth)
	}
	if gotReferer != "https://example.test/" || gotTitle != "modelrace test" {
		t.Fatalf("identification headers %q %q", gotReferer, gotTitle)
	}
	if gotReqID == "" {
		t.Fatal("missing request id")
	}
	if gotBody.Model != "qwen/qwen3-32b" || gotBody.MaxTokens != 200 || gotBody.Temperature != 0.7 {
		t.Fatalf("wire body %+v", gotBody)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" || gotBody.Messages[0].Content != "say hi" {
		t.Fatalf("messages %+v", gotBody.Messages)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	for _, content := range []string{"", "   \n\t "} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(completionBody(content)))
		}))
		res := testClient(ts.URL).Complete(context.Background(), "k", Request{Model: "m", Prompt: "p"})
		ts.Close()
		if !res.OK {
			t.Fatalf("content %q: expected success, got %+v", content, res)
		}
		if res.Text != EmptyResponsePlaceholder {
			t.Fatalf("content %q: text %q", content, res.Text)
		}
	}
}

func TestCompleteHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer ts.Close()

	res := testClient(ts.URL).Complete(context.Background(), "k", Request{Model: "m", Prompt: "p"})
	if res.OK {
		t.Fatalf("expected failure: %+v", res)
	}
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status %d", res.StatusCode)
	}
	if !strings.Contains(res.Err, "429") || !strings.Contains(res.Err, "rate limited") {
		t.Fatalf("error %q", res.Err)
	}
	if res.RawBody != "rate limited" {
		t.Fatalf("raw body %q", res.RawBody)
	}
	if res.Elapsed <= 0 {
		t.Fatalf("elapsed %v", res.Elapsed)
	}
}

func TestCompleteMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"no choices", `{"choices":[]}`},
		{"missing content", `{"choices":[{"message":{"role":"assistant"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			res := testClient(ts.URL).Complete(context.Background(), "k", Request{Model: "m", Prompt: "p"})
			if res.OK {
				t.Fatalf("expected failure: %+v", res)
			}
			if !strings.Contains(res.Err, "parse") {
				t.Fatalf("error %q", res.Err)
			}
			if res.RawBody != tt.body {
				t.Fatalf("raw body %q", res.RawBody)
			}
			if res.StatusCode != 0 {
				t.Fatalf("status %d", res.StatusCode)
			}
			if res.Elapsed <= 0 {
				t.Fatalf("elapsed %v", res.Elapsed)
			}
		})
	}
}

func TestCompleteNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	res := testClient(ts.URL).Complete(context.Background(), "k", Request{Model: "m", Prompt: "p"})
	if res.OK {
		t.Fatalf("expected failure: %+v", res)
	}
	if res.Elapsed != 0 {
		t.Fatalf("elapsed %v for transport failure", res.Elapsed)
	}
	if res.StatusCode != 0 {
		t.Fatalf("status %d", res.StatusCode)
	}
	if res.Err == "" {
		t.Fatal("missing error text")
	}
}

func TestResultVariantExclusive(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody("fine")))
	}))
	defer ok.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	success := testClient(ok.URL).Complete(context.Background(), "k", Request{Model: "m", Prompt: "p"})
	failure := testClient(bad.URL).Complete(context.Background(), "k", Request{Model: "m", Prompt: "p"})
	if !success.OK || success.Err != "" {
		t.Fatalf("success variant leaked failure fields: %+v", success)
	}
	if failure.OK || failure.Text != "" || failure.Err == "" {
		t.Fatalf("failure variant leaked success fields: %+v", failure)
	}
}
