package olojs

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, docs map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(NewMemoryStore(docs), nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string) (int, string) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func Test_Server_RendersDocuments(t *testing.T) {
	ts := testServer(t, map[string]string{
		"/hello": "Hello ${'World'}${'!'}",
	})
	code, body := httpGet(t, ts.URL+"/hello")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hello World!", body)
}

func Test_Server_SourceQuery(t *testing.T) {
	ts := testServer(t, map[string]string{"/doc": "${1+1}"})
	code, body := httpGet(t, ts.URL+"/doc?source")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "${1+1}", body)
}

func Test_Server_NotFound(t *testing.T) {
	ts := testServer(t, nil)
	code, _ := httpGet(t, ts.URL+"/absent")
	assert.Equal(t, http.StatusNotFound, code)
}

func Test_Server_RequireIsAvailable(t *testing.T) {
	ts := testServer(t, map[string]string{
		"/m": "${(require 'math').floor 2.9}",
	})
	code, body := httpGet(t, ts.URL+"/m")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2", body)
}

func Test_Server_PathGlobal(t *testing.T) {
	ts := testServer(t, map[string]string{"/where/am/i": "${__path__}"})
	_, body := httpGet(t, ts.URL+"/where/am/i")
	assert.Equal(t, "/where/am/i", body)
}

func Test_Server_PutAndDelete(t *testing.T) {
	ts := testServer(t, nil)
	client := ts.Client()

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/new", strings.NewReader("${2*3}"))
	require.NoError(t, err)
	res, err := client.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	code, body := httpGet(t, ts.URL+"/new")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "6", body)

	req, err = http.NewRequest(http.MethodDelete, ts.URL+"/new", nil)
	require.NoError(t, err)
	res, err = client.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	code, _ = httpGet(t, ts.URL+"/new")
	assert.Equal(t, http.StatusNotFound, code)
}

func Test_Server_WatchNotifiesOnWrite(t *testing.T) {
	ts := testServer(t, nil)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/-/watch"
	conn, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if res != nil {
		res.Body.Close()
	}
	defer conn.Close()

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/watched", strings.NewReader("doc"))
	require.NoError(t, err)
	res2, err := ts.Client().Do(req)
	require.NoError(t, err)
	res2.Body.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev struct {
		Path string `json:"path"`
	}
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "/watched", ev.Path)
}

func Test_ServerConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "olo.yaml")
	docsDir := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "greet.olo"), []byte("hi ${'there'}"), 0o644))

	cfg := `
address: ":9000"
mounts:
  - path: /
    type: file
    target: ` + docsDir + `
  - path: /tmp
    type: memory
`
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0o644))

	loaded, err := LoadServerConfig(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, ":9000", loaded.Address)
	require.Len(t, loaded.Mounts, 2)

	router, err := loaded.BuildRouter()
	require.NoError(t, err)

	ts := httptest.NewServer(NewServer(router, nil).Handler())
	defer ts.Close()
	code, body := httpGet(t, ts.URL+"/greet")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "hi there", body)
}

func Test_ServerConfig_UnknownType(t *testing.T) {
	cfg := &ServerConfig{Mounts: []MountConfig{{Path: "/", Type: "ftp"}}}
	_, err := cfg.BuildRouter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store type")
}
