package download

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanq16/docgrab/internal/utils"
)

func testConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.MaxRetries = 1
	return cfg
}

func newTestServer(t *testing.T, pageHTML string, files map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, pageHTML)
	})
	for path, content := range files {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, content)
		})
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestDownloadFromURL(t *testing.T) {
	page := `<html><body>
		<a href="/files/a.pdf">a</a>
		<a href="/files/b.docx">b</a>
	</body></html>`
	server := newTestServer(t, page, map[string]string{
		"/files/a.pdf":  "pdf-bytes-here",
		"/files/b.docx": "docx-bytes",
	})

	dir := t.TempDir()
	d := New(dir, testConfig(), zerolog.Nop())
	report, err := d.DownloadFromURL(server.URL)
	require.NoError(t, err)

	assert.Equal(t, 2, report.SuccessCount)
	assert.Zero(t, report.FailedCount)
	assert.Zero(t, report.SkippedCount)
	assert.Equal(t, []string{"a.pdf", "b.docx"}, report.SuccessfulFiles)
	assert.EqualValues(t, len("pdf-bytes-here")+len("docx-bytes"), report.TotalSize)
	assert.Greater(t, report.Duration(), 0.0)

	written, err := os.ReadFile(filepath.Join(dir, "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes-here", string(written))
}

func TestDownloadFromURL_DuplicateLinks(t *testing.T) {
	page := `<html><body>
		<a href="/a.pdf">a</a>
		<a href="/b.docx">b</a>
		<a href="/b.docx">b again</a>
	</body></html>`
	server := newTestServer(t, page, map[string]string{
		"/a.pdf":  "aaaa",
		"/b.docx": "bbbb",
	})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.docx"), []byte("already here"), 0644))

	d := New(dir, testConfig(), zerolog.Nop())
	report, err := d.DownloadFromURL(server.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 2, report.SkippedCount)
	assert.Zero(t, report.FailedCount)
	assert.Equal(t, []string{"b.docx", "b.docx"}, report.SkippedFiles)

	// the pre-existing file is never overwritten
	content, err := os.ReadFile(filepath.Join(dir, "b.docx"))
	require.NoError(t, err)
	assert.Equal(t, "already here", string(content))
}

func TestDownloadFromURL_PerFileFailureContinues(t *testing.T) {
	page := `<html><body>
		<a href="/bad.pdf">bad</a>
		<a href="/good.pdf">good</a>
	</body></html>`
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/bad.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/good.pdf", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	d := New(t.TempDir(), testConfig(), zerolog.Nop())
	report, err := d.DownloadFromURL(server.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailedCount)
	msg, ok := report.FailedFiles[server.URL+"/bad.pdf"]
	require.True(t, ok)
	assert.NotEmpty(t, msg)
	assert.Equal(t, len(report.Results), report.SuccessCount+report.FailedCount+report.SkippedCount)
}

func TestDownloadFromURL_PageFetchFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	d := New(t.TempDir(), testConfig(), zerolog.Nop())
	report, err := d.DownloadFromURL(server.URL)
	assert.Nil(t, report)

	var dlErr *utils.DownloadError
	require.True(t, errors.As(err, &dlErr))
	var netErr *utils.NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestDownloadFromURL_SizeBounds(t *testing.T) {
	page := `<html><body>
		<a href="/small.pdf">small</a>
		<a href="/large.pdf">large</a>
	</body></html>`
	server := newTestServer(t, page, map[string]string{
		"/small.pdf": "tiny",
		"/large.pdf": strings.Repeat("x", 2048),
	})

	dir := t.TempDir()
	cfg := testConfig()
	cfg.MinFileSize = 10
	cfg.MaxFileSize = 1024

	d := New(dir, cfg, zerolog.Nop())
	report, err := d.DownloadFromURL(server.URL)
	require.NoError(t, err)

	assert.Zero(t, report.SuccessCount)
	assert.Equal(t, 2, report.FailedCount)
	// out-of-bounds files must not be left on disk
	assert.NoFileExists(t, filepath.Join(dir, "small.pdf"))
	assert.NoFileExists(t, filepath.Join(dir, "large.pdf"))
}

func TestDownloadFromURL_OutputDirCreated(t *testing.T) {
	server := newTestServer(t, `<a href="/a.pdf">a</a>`, map[string]string{"/a.pdf": "data"})

	dir := filepath.Join(t.TempDir(), "nested", "out")
	d := New(dir, testConfig(), zerolog.Nop())
	report, err := d.DownloadFromURL(server.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, report.SuccessCount)
	assert.DirExists(t, dir)
}

func TestDownloadFromURL_DirCreationFailureIsFatal(t *testing.T) {
	server := newTestServer(t, `<a href="/a.pdf">a</a>`, map[string]string{"/a.pdf": "data"})

	base := t.TempDir()
	blocker := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0644))

	d := New(filepath.Join(blocker, "out"), testConfig(), zerolog.Nop())
	report, err := d.DownloadFromURL(server.URL)
	assert.Nil(t, report)

	var fsErr *utils.FileSystemError
	require.True(t, errors.As(err, &fsErr))
}
