package openrouter

import "encoding/json"

// EmptyResponsePlaceholder is substituted for blank generations so the UI
// can visibly flag them instead of rendering nothing.
const EmptyResponsePlaceholder = "[Empty response from model]"

// Request describes one generation call.
type Request struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// Result is the normalized outcome of one generation call. Exactly one of
// the success fields (Text and derived stats) or Err is populated; Elapsed
// is always present and is 0 when the request never completed.
type Result struct {
	OK             bool            `json:"ok"`
	Text           string          `json:"text,omitempty"`
	Elapsed        float64         `json:"elapsed_s"`
	WordCount      int             `json:"word_count"`
	CharCount      int             `json:"char_count"`
	WordsPerSecond float64         `json:"words_per_second"`
	Raw            json.RawMessage `json:"raw,omitempty"`

	Err        string `json:"error,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	RawBody    string `json:"raw_body,omitempty"`
}

// chatCompletionRequest is the OpenRouter chat completions wire request.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse models the subset of the response this tool reads.
// Content is a pointer so a missing key is distinguishable from an empty
// generation.
type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
