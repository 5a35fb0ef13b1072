package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cuemby/hutch/pkg/refs"
	"github.com/cuemby/hutch/pkg/runner"
	"github.com/cuemby/hutch/pkg/sqlgate"
	"github.com/cuemby/hutch/pkg/store"
	"github.com/cuemby/hutch/pkg/streamlog"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore, *refs.MemoryRefs) {
	t.Helper()

	st := store.NewMemoryStore()
	rf := refs.NewMemoryRefs()
	stream := streamlog.New(streamlog.Data)
	run := runner.New(st, rf, runner.WithStreamLog(stream))
	if err := run.Register(sqlgate.New()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ts := httptest.NewServer(NewServer(run, st, rf, stream).Handler())
	t.Cleanup(ts.Close)
	return ts, st, rf
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error = %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var body map[string]any
	status := getJSON(t, ts.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestObjectAndRefEndpoints(t *testing.T) {
	ts, st, rf := newTestServer(t)

	hash, err := st.Put(map[string]any{"name": "users"})
	assert.NoError(t, err)
	assert.NoError(t, rf.Set("db/tables/users/schema", hash))

	var obj map[string]any
	status := getJSON(t, ts.URL+"/v1/objects/"+string(hash), &obj)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "users", obj["value"].(map[string]any)["name"])

	var ref map[string]any
	status = getJSON(t, ts.URL+"/v1/refs/db/tables/users/schema", &ref)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(hash), ref["hash"])

	var list map[string]any
	status = getJSON(t, ts.URL+"/v1/refs?prefix=db/", &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"db/tables/users/schema"}, list["names"])

	// Missing object and ref are 404s
	var errBody map[string]any
	status = getJSON(t, ts.URL+"/v1/objects/"+strings.Repeat("0", 64), &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	status = getJSON(t, ts.URL+"/v1/refs/no/such/ref", &errBody)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPostEventDispatches(t *testing.T) {
	ts, _, _ := newTestServer(t)

	body := `{"type": "sql", "data": {"sql": "SELECT * FROM users"}}`
	resp, err := http.Post(ts.URL+"/v1/events", "application/json", strings.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var out map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	// The emit's causal log slice: sql claimed, select_parse unclaimed
	logEntries := out["log"].([]any)
	assert.Len(t, logEntries, 2)
	first := logEntries[0].(map[string]any)
	assert.Equal(t, "sql", first["type"])
	assert.Equal(t, "sql", first["claimed"])
	second := logEntries[1].(map[string]any)
	assert.Equal(t, "select_parse", second["type"])

	var pending map[string]any
	status := getJSON(t, ts.URL+"/v1/pending", &pending)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, pending["events"].([]any), 1)
}

func TestGetLogEndpoint(t *testing.T) {
	ts, _, _ := newTestServer(t)

	body := `{"type": "orphan"}`
	resp, err := http.Post(ts.URL+"/v1/events", "application/json", strings.NewReader(body))
	assert.NoError(t, err)
	resp.Body.Close()

	var out map[string]any
	status := getJSON(t, ts.URL+"/v1/log", &out)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "data", out["level"])
	assert.Len(t, out["entries"].([]any), 1)
}

func TestPostEventRejectsBadBody(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/events", "application/json", strings.NewReader("{not json"))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Empty type is API misuse, not a gate failure
	resp2, err := http.Post(ts.URL+"/v1/events", "application/json", strings.NewReader(`{"data":{}}`))
	assert.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}
