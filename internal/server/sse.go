package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/pipeline"
)

// SSEWriter streams the progress of one render as Server-Sent Events:
// "step" per pipeline step, then "result" and "complete", or a single "error".
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// renderFailure is the payload of an "error" event.
type renderFailure struct {
	Error  string          `json:"error"`
	Format pipeline.Format `json:"format"`
	Locale string          `json:"locale,omitempty"`
}

// renderComplete is the payload of a "complete" event.
type renderComplete struct {
	RenderID   string          `json:"render_id"`
	Status     string          `json:"status"`
	Format     pipeline.Format `json:"format"`
	Locale     string          `json:"locale"`
	Filename   string          `json:"filename"`
	DurationMS int64           `json:"duration_ms"`
}

// NewSSEWriter sets the event-stream headers on w.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends data as the JSON payload of event and flushes it.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError reports a failed render of req.
func (s *SSEWriter) WriteError(req pipeline.Request, err error) error {
	return s.WriteEvent("error", renderFailure{
		Error:  err.Error(),
		Format: req.Format,
		Locale: req.Settings.Locale,
	})
}

// WriteComplete closes the stream of a successful render.
func (s *SSEWriter) WriteComplete(res *pipeline.Result) error {
	return s.WriteEvent("complete", renderComplete{
		RenderID:   res.ID.String(),
		Status:     "completed",
		Format:     res.Format,
		Locale:     res.Locale,
		Filename:   res.Filename,
		DurationMS: res.Duration.Milliseconds(),
	})
}
