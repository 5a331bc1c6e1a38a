package export

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewServer_Handler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layout.svg"), []byte("<svg/>"), 0644))

	srv := httptest.NewServer(NewPreviewServer(dir, "127.0.0.1:0", nil).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/layout.svg")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<svg/>", string(body))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
	assert.Equal(t, "no-cache", resp.Header.Get("Pragma"))
}

func TestPreviewServer_Status(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.svg"), []byte("x"), 0644))

	srv := httptest.NewServer(NewPreviewServer(dir, "127.0.0.1:0", nil).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/__preview__/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var st previewStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, "running", st.Status)
	assert.Equal(t, []string{"a.svg", "b.png"}, st.Files)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestPreviewServer_RunAndShutdown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("hello"), 0644))

	p := NewPreviewServer(dir, "127.0.0.1:0", nil)
	require.NoError(t, p.Listen())
	assert.True(t, strings.HasPrefix(p.URL(), "http://127.0.0.1:"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	var resp *http.Response
	var err error
	for range 50 {
		resp, err = http.Get(p.URL() + "/")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "hello", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPreviewServer_MissingDir(t *testing.T) {
	p := NewPreviewServer(filepath.Join(t.TempDir(), "missing"), "127.0.0.1:0", nil)
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview directory")
}

func TestFindAvailablePort(t *testing.T) {
	port, err := FindAvailablePort(19000, 19100)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, 19000)
	assert.LessOrEqual(t, port, 19100)
}

func TestWriteIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layout.svg"), []byte("<svg/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	require.NoError(t, WriteIndex(dir, "Cozy <layout>"))
	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, `src="layout.svg"`)
	assert.NotContains(t, html, "notes.txt")
	assert.Contains(t, html, "Cozy &lt;layout&gt;")
}
