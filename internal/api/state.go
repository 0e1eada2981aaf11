package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/modelrace/modelrace/internal/history"
)

// StateHandler returns a JSON snapshot of the run history.
func StateHandler(reg *history.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, reg.Snapshot())
	}
}

// StateStreamHandler streams state snapshots as Server-Sent Events.
func StateStreamHandler(reg *history.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				b, _ := json.Marshal(reg.Snapshot())
				_, _ = w.Write([]byte("data: "))
				_, _ = w.Write(b)
				_, _ = w.Write([]byte("\n\n"))
				flusher.Flush()
			}
		}
	}
}
