package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/st4conv/internal/store"
	"github.com/leapstack-labs/st4conv/internal/testutil"
)

const sample = `ST4 export
v3.2
Tower A [demo]
/Story/
Ground
1
0,0,3.0
/Axis data/
1,0
2,5
3,0
4,4
/Columns Data/
101,40,40
/Column axis data/
1,12,22,0,0
/Floors Data/
9D1,15,0,0,0,0,0,0,11,12,21,22
`

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	cfg.Logger = testutil.NewTestLogger(t)
	ts := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestConvertJSON(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/api/convert?name=tower.st4", sample)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "1", resp.Header.Get(HeaderDiagnostics))
	assert.Empty(t, resp.Header.Get(HeaderConversionID))

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "tower.st4", doc["fileName"])
	assert.Equal(t, "Tower A", doc["projectTitle"])
	assert.Len(t, doc["axes"], 4)
}

func TestConvertYAML(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/api/convert?format=yaml", sample)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "fileName: upload.st4")
}

func TestConvertStoresConversion(t *testing.T) {
	st := store.NewSQLiteStore(nil)
	require.NoError(t, st.Open(context.Background(), ":memory:"))
	defer func() { _ = st.Close() }()
	ts := newTestServer(t, Config{Store: st})

	resp := post(t, ts.URL+"/api/convert?name=tower.st4", sample)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := resp.Header.Get(HeaderConversionID)
	require.NotEmpty(t, id)

	c, err := st.GetConversion(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "tower.st4", c.FileName)
	assert.Equal(t, 1, c.Diagnostics)
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		query  string
		body   string
		status int
		errMsg string
	}{
		{"unknown format", Config{}, "?format=csv", sample, http.StatusBadRequest, "unknown format"},
		{"unknown encoding", Config{}, "?encoding=klingon", sample, http.StatusBadRequest, "unknown encoding"},
		{"empty model", Config{}, "", "nothing\n", http.StatusUnprocessableEntity, "no floors"},
		{"body too large", Config{MaxBodyBytes: 16}, "", sample, http.StatusRequestEntityTooLarge, "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.cfg)

			resp := post(t, ts.URL+"/api/convert"+tt.query, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var e errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
			assert.Contains(t, e.Error, tt.errMsg)
		})
	}
}

func TestInspect(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/api/inspect?name=tower.st4", sample)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		FileName string `json:"fileName"`
		Lines    int    `json:"lines"`
		Stats    struct {
			Floors  int `json:"floors"`
			Columns int `json:"columns"`
		} `json:"stats"`
		Floors      []map[string]any `json:"floors"`
		Diagnostics []struct {
			Kind    string `json:"kind"`
			Section string `json:"section"`
			Line    int    `json:"line"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "tower.st4", got.FileName)
	assert.Equal(t, 18, got.Lines)
	assert.Equal(t, 1, got.Stats.Floors)
	assert.Equal(t, 1, got.Stats.Columns)
	require.Len(t, got.Floors, 1)
	require.Len(t, got.Diagnostics, 1)
	assert.Equal(t, "reference", got.Diagnostics[0].Kind)
	assert.Equal(t, "Floors Data", got.Diagnostics[0].Section)
	assert.Equal(t, 18, got.Diagnostics[0].Line)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/convert")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServeListenerShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s := New(Config{Logger: testutil.NewTestLogger(t)})
	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
