package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEmitterPostsEvent(t *testing.T) {
	received := make(chan map[string]interface{}, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emit", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	emitter := NewHTTPEmitter(srv.URL, 2*time.Second)
	emitter.Emit("attendance:changed", map[string]interface{}{"employee_id": "EMP0001"})

	select {
	case payload := <-received:
		assert.Equal(t, "attendance:changed", payload["event"])
		assert.NotEmpty(t, payload["event_id"])
		data, ok := payload["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "EMP0001", data["employee_id"])
	case <-time.After(3 * time.Second):
		t.Fatal("emit never reached the relay")
	}
}

func TestHTTPEmitterSwallowsRelayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	emitter := NewHTTPEmitter(srv.URL, time.Second)

	// Must not panic or block the caller.
	emitter.Emit("attendance:changed", nil)
	time.Sleep(100 * time.Millisecond)
}

func TestHTTPEmitterDisabledWhenUnconfigured(t *testing.T) {
	emitter := NewHTTPEmitter("", time.Second)
	emitter.Emit("attendance:changed", nil)
}
