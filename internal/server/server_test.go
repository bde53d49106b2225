package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/assembler"
	"github.com/jonathan/resume-builder/internal/persistence"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingSink rejects every write
type failingSink struct{}

func (failingSink) Write(context.Context, string, string) error { return errors.New("backend down") }
func (failingSink) Close() error                                { return nil }

// gatedSink blocks writes until release is closed
type gatedSink struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedSink) Write(ctx context.Context, _, _ string) error {
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gatedSink) Close() error { return nil }

// newTestServer creates a server with rate limiting disabled and logs discarded
func newTestServer(t *testing.T, sink persistence.Sink) *Server {
	t.Helper()
	s, err := New(Config{
		Sink:      sink,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["session_id"])
	return resp["session_id"]
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func TestNew_RequiresSink(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())

	w := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestFieldsEndpoint(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())

	w := do(t, s, http.MethodGet, "/fields", "")
	require.Equal(t, http.StatusOK, w.Code)

	var catalog FieldCatalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	require.Len(t, catalog.Sections, 7)
	assert.Equal(t, "education", catalog.Sections[0].Name)
	assert.Equal(t, []string{"date", "institution", "degree", "highlights"}, catalog.Sections[0].Fields)
	assert.Contains(t, catalog.FixedFields, "contact.name")
	assert.Contains(t, catalog.FixedFields, "interests")
}

func TestOptionsPreflight(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())

	w := do(t, s, http.MethodOptions, "/sessions", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestEditAndSubmitFlow(t *testing.T) {
	sink := persistence.NewMemorySink()
	s := newTestServer(t, sink)
	id := createSession(t, s)
	base := "/sessions/" + id

	// two education entries
	for want := 0; want < 2; want++ {
		w := do(t, s, http.MethodPost, base+"/sections/education/entries", "")
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"index":%d}`, want), w.Body.String())
	}

	w := do(t, s, http.MethodPut, base+"/sections/education/entries/1", `{"field":"degree","value":"BS"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var entry map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "BS", entry["degree"])
	assert.Equal(t, "", entry["institution"])

	w = do(t, s, http.MethodPut, base+"/fields/contact.name", `{"value":"Jane Doe"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, base+"/document", "")
	require.Equal(t, http.StatusOK, w.Code)
	document := w.Body.String()

	doc, err := assembler.Deserialize(document)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.Contact.Name)
	require.Len(t, doc.Sections.Education, 2)
	assert.Equal(t, "", doc.Sections.Education[0].Degree)
	assert.Equal(t, "BS", doc.Sections.Education[1].Degree)

	w = do(t, s, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "saved", resp["status"])
	assert.Equal(t, "resumeData-"+id, resp["key"])

	stored, ok := sink.Get("resumeData-" + id)
	require.True(t, ok)
	assert.Equal(t, document, stored)
}

func TestGetEntry(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())
	id := createSession(t, s)

	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/sessions/"+id+"/sections/languages/entries", "").Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/sessions/"+id+"/sections/languages/entries/0", `{"field":"name","value":"French"}`).Code)

	w := do(t, s, http.MethodGet, "/sessions/"+id+"/sections/languages/entries/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"French","proficiency":""}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/sessions/"+id+"/sections/languages/entries/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditErrors(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())
	id := createSession(t, s)
	base := "/sessions/" + id
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, base+"/sections/skills/entries", "").Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		errHas string
	}{
		{"unknown section on add", http.MethodPost, base + "/sections/hobbies/entries", "", http.StatusBadRequest, "unknown section"},
		{"index out of range", http.MethodPut, base + "/sections/skills/entries/5", `{"field":"name","value":"Go"}`, http.StatusNotFound, "invalid index"},
		{"negative index", http.MethodPut, base + "/sections/skills/entries/-1", `{"field":"name","value":"Go"}`, http.StatusNotFound, "invalid index"},
		{"non-numeric index", http.MethodPut, base + "/sections/skills/entries/first", `{"field":"name","value":"Go"}`, http.StatusBadRequest, "integer"},
		{"unknown entry field", http.MethodPut, base + "/sections/skills/entries/0", `{"field":"level","value":"x"}`, http.StatusBadRequest, "invalid field"},
		{"missing value", http.MethodPut, base + "/sections/skills/entries/0", `{"field":"name"}`, http.StatusBadRequest, "validation error"},
		{"malformed body", http.MethodPut, base + "/sections/skills/entries/0", `{"field":`, http.StatusBadRequest, "validation error"},
		{"unknown body key", http.MethodPut, base + "/fields/summary", `{"value":"x","extra":1}`, http.StatusBadRequest, "validation error"},
		{"unknown fixed field", http.MethodPut, base + "/fields/contact.fax", `{"value":"x"}`, http.StatusBadRequest, "invalid field"},
		{"unknown session", http.MethodPost, "/sessions/nope/sections/skills/entries", "", http.StatusNotFound, "session not found"},
		{"unknown session document", http.MethodGet, "/sessions/nope/document", "", http.StatusNotFound, "session not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, errorMessage(t, w), tt.errHas)
		})
	}

	// none of the rejected edits changed the document
	w := do(t, s, http.MethodGet, base+"/document", "")
	doc, err := assembler.Deserialize(w.Body.String())
	require.NoError(t, err)
	require.Len(t, doc.Sections.Skills, 1)
	assert.Equal(t, "", doc.Sections.Skills[0].Name)
	assert.Equal(t, "", doc.Sections.Summary)
}

func TestSetField_EmptyValueClears(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())
	id := createSession(t, s)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/sessions/"+id+"/fields/summary", `{"value":"Builder"}`).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/sessions/"+id+"/fields/summary", `{"value":""}`).Code)

	w := do(t, s, http.MethodGet, "/sessions/"+id+"/document", "")
	doc, err := assembler.Deserialize(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "", doc.Sections.Summary)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())
	a := createSession(t, s)
	b := createSession(t, s)
	assert.NotEqual(t, a, b)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/sessions/"+a+"/fields/contact.name", `{"value":"A"}`).Code)

	w := do(t, s, http.MethodGet, "/sessions/"+b+"/document", "")
	doc, err := assembler.Deserialize(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "", doc.Contact.Name)
}

func TestDeleteSession(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())
	id := createSession(t, s)
	require.Equal(t, 1, s.sessions.count())

	w := do(t, s, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, s.sessions.count())

	w = do(t, s, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/sessions/"+id+"/submit", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_ExpiresWhenIdle(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())
	clock := time.Now()
	s.sessions.now = func() time.Time { return clock }

	id := createSession(t, s)

	// each request resets the idle timer
	clock = clock.Add(DefaultSessionTTL - time.Second)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/sessions/"+id+"/document", "").Code)
	clock = clock.Add(DefaultSessionTTL - time.Second)
	assert.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/sessions/"+id+"/sections/skills/entries", "").Code)

	clock = clock.Add(DefaultSessionTTL + time.Second)
	w := do(t, s, http.MethodGet, "/sessions/"+id+"/document", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, errorMessage(t, w), "session not found")
	assert.Equal(t, 0, s.sessions.count())
}

func TestSession_NegativeTTLNeverExpires(t *testing.T) {
	s, err := New(Config{
		Sink:       persistence.NewMemorySink(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimit:  &ratelimit.Config{Enabled: false},
		SessionTTL: -1,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	clock := time.Now()
	s.sessions.now = func() time.Time { return clock }
	id := createSession(t, s)

	clock = clock.Add(24 * time.Hour)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/sessions/"+id+"/document", "").Code)
}

func TestSessionRegistry_Sweep(t *testing.T) {
	r := newSessionRegistry(time.Minute)
	clock := time.Now()
	r.now = func() time.Time { return clock }
	newSubmitter := func(id string) *assembler.Submitter {
		return assembler.NewSubmitter(persistence.NewMemorySink(), "k-"+id, nil)
	}

	stale := r.create(newSubmitter)
	clock = clock.Add(2 * time.Minute)
	fresh := r.create(newSubmitter)

	removed := r.sweep(clock.Add(-time.Minute))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, r.count())

	_, err := r.get(stale.id)
	assert.Error(t, err)
	got, err := r.get(fresh.id)
	require.NoError(t, err)
	assert.Same(t, fresh, got)
}

func TestSessionRegistry_StopIsIdempotent(t *testing.T) {
	r := newSessionRegistry(time.Minute)
	r.startSweeper(time.Hour)
	r.stop()
	r.stop()
}

func TestSubmit_PersistenceFailure(t *testing.T) {
	s := newTestServer(t, failingSink{})
	id := createSession(t, s)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/sessions/"+id+"/sections/awards/entries", "").Code)

	before := do(t, s, http.MethodGet, "/sessions/"+id+"/document", "").Body.String()

	w := do(t, s, http.MethodPost, "/sessions/"+id+"/submit", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, errorMessage(t, w), "backend down")

	after := do(t, s, http.MethodGet, "/sessions/"+id+"/document", "").Body.String()
	assert.Equal(t, before, after)
}

func TestSubmit_ConcurrentSubmitConflicts(t *testing.T) {
	sink := &gatedSink{entered: make(chan struct{}), release: make(chan struct{})}
	s := newTestServer(t, sink)
	id := createSession(t, s)

	first := make(chan int, 1)
	go func() {
		first <- do(t, s, http.MethodPost, "/sessions/"+id+"/submit", "").Code
	}()

	select {
	case <-sink.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first submit never reached the sink")
	}

	// edits stay available while the write is in flight
	w := do(t, s, http.MethodPost, "/sessions/"+id+"/sections/projects/entries", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, s, http.MethodPost, "/sessions/"+id+"/submit", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	close(sink.release)
	assert.Equal(t, http.StatusOK, <-first)
}

func TestRateLimit_SubmitTier(t *testing.T) {
	s, err := New(Config{
		Sink:   persistence.NewMemorySink(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimit: &ratelimit.Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
		},
	})
	require.NoError(t, err)
	defer s.Close()

	id := createSession(t, s)
	for i := 0; i < 5; i++ {
		w := do(t, s, http.MethodPost, "/sessions/"+id+"/submit", "")
		require.Equal(t, http.StatusOK, w.Code, "submit %d", i+1)
		assert.Equal(t, "30", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(t, s, http.MethodPost, "/sessions/"+id+"/submit", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	// health is never limited
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, persistence.NewMemorySink())
	id := createSession(t, s)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/sessions/"+id+"/sections/references/entries", "").Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/sessions/"+id+"/submit", "").Code)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `resume_builder_mutations_total{op="add",result="ok",section="references"}`)
	assert.Contains(t, body, `resume_builder_submits_total{result="ok"}`)
	assert.Contains(t, body, "resume_builder_sessions_active")
	assert.Contains(t, body, "resume_builder_submit_duration_seconds_bucket")
}

func TestRequestLoggingCapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(Config{
		Sink:      persistence.NewMemorySink(),
		Logger:    slog.New(slog.NewTextHandler(&buf, nil)),
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	defer s.Close()

	do(t, s, http.MethodGet, "/sessions/missing/document", "")

	assert.Contains(t, buf.String(), "path=/sessions/missing/document")
	assert.Contains(t, buf.String(), "status=404")
}
