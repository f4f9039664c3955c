package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/observability"
	"github.com/aretw0/easel/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *session.Manager) {
	t.Helper()
	mgr := session.NewManager(memory.NewStore(), session.WithEditorOptions(easel.WithBackground(400, 300)))
	return NewHandler(mgr, opts...), mgr
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", path, &buf))
	return w
}

func decodeStep(t *testing.T, w *httptest.ResponseRecorder) StepResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp StepResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestDispatchUndoRedo(t *testing.T) {
	h, _ := newTestHandler(t)

	// 1. Add a shape
	resp := decodeStep(t, post(t, h, "/documents/d1/commands", CommandRequest{
		Type: domain.CmdAddShape,
		Payload: domain.Payload{
			"shape": map[string]any{"kind": "rect", "left": 10, "top": 10, "width": 50, "height": 20},
		},
	}))
	assert.True(t, resp.Applied)
	require.NotNil(t, resp.Command)
	assert.Equal(t, domain.CmdDeleteShapes, resp.Command.Type)
	assert.Equal(t, 1, resp.History.UndoDepth)
	require.NotNil(t, resp.Diff)
	require.Len(t, resp.Diff.Added, 1)

	// 2. Move it; the diff reports the change
	resp = decodeStep(t, post(t, h, "/documents/d1/commands", CommandRequest{
		Type:    domain.CmdMoveShapesDelta,
		Payload: domain.Payload{"dx": 5, "dy": 0},
	}))
	require.NotNil(t, resp.Diff)
	require.Len(t, resp.Diff.Changed, 1)
	assert.Equal(t, 15.0, resp.Diff.Changed[0].Left)

	// 3. Undo and redo
	resp = decodeStep(t, post(t, h, "/documents/d1/undo", nil))
	assert.True(t, resp.Applied)
	assert.Equal(t, 1, resp.History.RedoDepth)

	resp = decodeStep(t, post(t, h, "/documents/d1/redo", nil))
	assert.True(t, resp.Applied)
	assert.Equal(t, 0, resp.History.RedoDepth)

	// 4. Nothing left to redo
	resp = decodeStep(t, post(t, h, "/documents/d1/redo", nil))
	assert.False(t, resp.Applied)
	assert.Nil(t, resp.Diff)

	// 5. Scene endpoint
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/documents/d1/shapes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var scene domain.Scene
	require.NoError(t, json.NewDecoder(w.Body).Decode(&scene))
	require.Len(t, scene.Shapes, 1)
	assert.Equal(t, 15.0, scene.Shapes[0].Left)
}

func TestDispatch_Rejected(t *testing.T) {
	h, _ := newTestHandler(t)

	w := post(t, h, "/documents/d1/commands", CommandRequest{Type: "PAINT"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/documents/d1/commands", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatch_Coalesce(t *testing.T) {
	h, _ := newTestHandler(t)

	post(t, h, "/documents/d1/commands", CommandRequest{
		Type:    domain.CmdAddShape,
		Payload: domain.Payload{"shape": map[string]any{"kind": "circle", "radius": 10}},
	})
	for i := 0; i < 3; i++ {
		decodeStep(t, post(t, h, "/documents/d1/commands", CommandRequest{
			Type:             domain.CmdSetStyle,
			Payload:          domain.Payload{"fill": "#00000" + string(rune('0'+i))},
			CoalesceKey:      "color-drag",
			CoalesceWindowMs: 60_000,
		}))
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/documents/d1/history", nil))
	var snap domain.HistorySnapshot
	require.NoError(t, json.NewDecoder(w.Body).Decode(&snap))
	assert.Equal(t, 2, snap.UndoDepth)

	// Clear empties both stacks
	w = post(t, h, "/documents/d1/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&snap))
	assert.Equal(t, domain.HistorySnapshot{}, snap)
}

func TestDocuments_ListAndDelete(t *testing.T) {
	h, mgr := newTestHandler(t)
	ctx := context.Background()

	_, err := mgr.History(ctx, "b")
	require.NoError(t, err)
	_, err = mgr.History(ctx, "a")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/documents", nil))
	var docs []string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&docs))
	assert.Equal(t, []string{"a", "b"}, docs)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("DELETE", "/documents/a", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}

// flushRecorder guards the body so the SSE goroutine and the test can share it.
type flushRecorder struct {
	mu sync.Mutex
	*httptest.ResponseRecorder
}

func (f *flushRecorder) Write(b []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ResponseRecorder.Write(b)
}

func (f *flushRecorder) Flush() {}

func (f *flushRecorder) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Body.String()
}

func TestSubscribeEvents(t *testing.T) {
	h, _ := newTestHandler(t)

	// 1. Subscribe
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(sub, httptest.NewRequest("GET", "/documents/d1/events", nil).WithContext(ctx))
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(sub.String(), "event: ping")
	}, time.Second, 10*time.Millisecond)

	// 2. Dispatch
	post(t, h, "/documents/d1/commands", CommandRequest{
		Type:    domain.CmdAddShape,
		Payload: domain.Payload{"shape": map[string]any{"kind": "rect", "width": 1, "height": 1}},
	})

	// 3. Both the history event and the scene diff arrive
	require.Eventually(t, func() bool {
		out := sub.String()
		return strings.Contains(out, "event: scene") && strings.Contains(out, `"event":"dispatch"`)
	}, time.Second, 10*time.Millisecond)

	assert.Contains(t, sub.String(), "event: history")
	assert.Contains(t, sub.String(), `"event":"init"`)

	cancel()
	<-done
}

func TestHealthInfoMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	h, _ := newTestHandler(t, WithMetrics(metrics.Handler()))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	var info map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, "easel-http", info["app"])
	assert.Equal(t, easel.Version, info["version"])
	assert.Len(t, info["commands"], len(domain.CommandTypes()))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/documents/x/commands", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPostLog(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)
	h, _ := newTestHandler(t, WithLogger(logger))

	w := post(t, h, "/log", ClientLog{Level: "warn", Message: "canvas lost context", Fields: map[string]any{"tab": "main"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, buf.String(), "canvas lost context")
	assert.Contains(t, buf.String(), "source=client")
	assert.Contains(t, buf.String(), "tab=main")
	assert.Contains(t, buf.String(), "level=WARN")

	w = post(t, h, "/log", ClientLog{Level: "info"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
