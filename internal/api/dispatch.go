package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/modelrace/modelrace/internal/compare"
	"github.com/modelrace/modelrace/internal/logx"
	"github.com/modelrace/modelrace/internal/openrouter"
)

// Slider bounds and defaults from the input form.
const (
	minMaxTokens       = 50
	maxMaxTokens       = 2000
	defaultMaxTokens   = 200
	minTemperature     = 0.0
	maxTemperature     = 2.0
	defaultTemperature = 0.7
)

type testRequest struct {
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature *float64 `json:"temperature"`
	APIKey      string   `json:"api_key"`
}

type compareRequest struct {
	Model1      string   `json:"model_1"`
	Model2      string   `json:"model_2"`
	Prompt      string   `json:"prompt"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature *float64 `json:"temperature"`
	APIKey      string   `json:"api_key"`
}

// TestHandler handles POST /api/test: one model, one call.
func TestHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req testRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		key, genReq, err := validate(d, req.APIKey, req.Prompt, req.MaxTokens, req.Temperature, req.Model)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		genReq.Model = req.Model
		res := d.Dispatcher.Complete(r.Context(), key, genReq)
		rep := compare.Single(req.Model, res)
		if d.History != nil {
			d.History.RecordSingle(chiMiddleware.GetReqID(r.Context()), rep)
		}
		writeJSON(w, rep)
	}
}

// CompareHandler handles POST /api/compare: two models, two sequential
// calls, one paired report.
func CompareHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req compareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		key, genReq, err := validate(d, req.APIKey, req.Prompt, req.MaxTokens, req.Temperature, req.Model1, req.Model2)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		logID := chiMiddleware.GetReqID(r.Context())
		logx.Log.Info().Str("request_id", logID).Str("model_1", req.Model1).Str("model_2", req.Model2).Msg("compare")

		// Deliberately sequential: the comparison measures each model on
		// its own, and the total latency is the sum of both calls.
		genReq.Model = req.Model1
		r1 := d.Dispatcher.Complete(r.Context(), key, genReq)
		genReq.Model = req.Model2
		r2 := d.Dispatcher.Complete(r.Context(), key, genReq)

		rep := compare.Pair(req.Model1, req.Model2, r1, r2)
		if d.History != nil {
			d.History.RecordPair(logID, rep)
		}
		writeJSON(w, rep)
	}
}

// validate applies the blocking checks the form performs before any
// dispatch. It returns the resolved credential and a partially filled
// generation request with defaults applied.
func validate(d Deps, apiKey, prompt string, maxTokens int, temperature *float64, models ...string) (string, openrouter.Request, error) {
	key := apiKey
	if key == "" {
		key = d.DefaultAPIKey
	}
	if key == "" {
		return "", openrouter.Request{}, fmt.Errorf("missing API key")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", openrouter.Request{}, fmt.Errorf("missing prompt")
	}
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	if maxTokens < minMaxTokens || maxTokens > maxMaxTokens {
		return "", openrouter.Request{}, fmt.Errorf("max_tokens must be between %d and %d", minMaxTokens, maxMaxTokens)
	}
	temp := defaultTemperature
	if temperature != nil {
		temp = *temperature
	}
	if temp < minTemperature || temp > maxTemperature {
		return "", openrouter.Request{}, fmt.Errorf("temperature must be between %.1f and %.1f", minTemperature, maxTemperature)
	}
	for _, m := range models {
		if m == "" {
			return "", openrouter.Request{}, fmt.Errorf("missing model")
		}
		if !contains(d.Models, m) {
			return "", openrouter.Request{}, fmt.Errorf("unknown model %q", m)
		}
	}
	return key, openrouter.Request{Prompt: prompt, MaxTokens: maxTokens, Temperature: temp}, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Log.Error().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
