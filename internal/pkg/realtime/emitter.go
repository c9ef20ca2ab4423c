package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Emitter pushes domain events to the socket relay so connected dashboards
// refresh without polling. Delivery is best-effort: callers never block on
// it and never see its errors.
type Emitter interface {
	Emit(event string, data map[string]interface{})
}

type httpEmitter struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPEmitter builds an emitter posting to baseURL+"/emit". An empty
// baseURL disables emission entirely.
func NewHTTPEmitter(baseURL string, timeout time.Duration) Emitter {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &httpEmitter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (e *httpEmitter) Emit(event string, data map[string]interface{}) {
	if e.baseURL == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()

		payload := map[string]interface{}{
			"event_id": uuid.NewString(),
			"event":    event,
			"data":     data,
		}

		body, err := json.Marshal(payload)
		if err != nil {
			slog.Warn("Realtime emit skipped", "event", event, "error", err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/emit", bytes.NewReader(body))
		if err != nil {
			slog.Warn("Realtime emit skipped", "event", event, "error", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := e.client.Do(req)
		if err != nil {
			slog.Warn("Realtime emit failed", "event", event, "error", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			slog.Warn("Realtime emit rejected", "event", event, "status", fmt.Sprintf("%d", resp.StatusCode))
		}
	}()
}

// NopEmitter discards every event. Used in tests and when no relay is
// configured.
type NopEmitter struct{}

func (NopEmitter) Emit(event string, data map[string]interface{}) {}
