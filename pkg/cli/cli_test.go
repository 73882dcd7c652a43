package cli_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/uprel/pkg/cli"
)

type fakeServer struct {
	*httptest.Server
	existing []map[string]any
	deleted  int
	uploaded []byte
}

func newFakeServer(t *testing.T, existing []map[string]any) *fakeServer {
	t.Helper()
	f := &fakeServer{existing: existing}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v3/repos/octo/hello/releases/tags/v1.2.3", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"id":         42,
			"tag_name":   "v1.2.3",
			"body":       "notes",
			"upload_url": f.URL + "/api/uploads/repos/octo/hello/releases/42/assets{?name,label}",
		}))
	})
	mux.HandleFunc("GET /api/v3/repos/octo/hello/releases/42/assets", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, json.NewEncoder(w).Encode(f.existing))
	})
	mux.HandleFunc("DELETE /api/v3/repos/octo/hello/releases/assets/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.deleted++
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/uploads/repos/octo/hello/releases/42/assets", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		f.uploaded = body
		w.WriteHeader(http.StatusCreated)
		gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"id":                   99,
			"name":                 r.URL.Query().Get("name"),
			"browser_download_url": "https://github.com/octo/hello/releases/download/v1.2.3/app.bin",
		}))
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_ACTIONS", "GITHUB_TOKEN", "GITHUB_API_URL", "GITHUB_REPOSITORY",
		"INPUT_TOKEN", "INPUT_FILE", "INPUT_TAG", "INPUT_ASSET_NAME", "INPUT_OVERWRITE",
		"INPUT_REPO_NAME", "INPUT_CONFIG", "SENTRY_DSN", "INPUT_SENTRY_DSN",
	} {
		t.Setenv(key, "")
	}
}

func writeAsset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.bin")
	gt.NoError(t, os.WriteFile(path, []byte("payload"), 0600))
	return path
}

func TestRun_Upload(t *testing.T) {
	clearEnv(t)
	srv := newFakeServer(t, nil)

	err := cli.Run(context.Background(), []string{
		"uprel",
		"--token", "test-token",
		"--github-api-url", srv.URL,
		"--repo-name", "octo/hello",
		"--file", writeAsset(t),
		"--tag", "refs/tags/v1.2.3",
		"--asset-name", "app.bin",
	})
	gt.NoError(t, err)
	gt.String(t, string(srv.uploaded)).Equal("payload")
	gt.Number(t, srv.deleted).Equal(0)
}

func TestRun_Overwrite(t *testing.T) {
	clearEnv(t)
	srv := newFakeServer(t, []map[string]any{
		{"id": 7, "name": "app.bin", "browser_download_url": "https://example.com/old"},
	})

	err := cli.Run(context.Background(), []string{
		"uprel",
		"--token", "test-token",
		"--github-api-url", srv.URL,
		"--repo-name", "octo/hello",
		"--file", writeAsset(t),
		"--tag", "v1.2.3",
		"--asset-name", "app.bin",
		"--overwrite", "true",
	})
	gt.NoError(t, err)
	gt.Number(t, srv.deleted).Equal(1)
	gt.String(t, string(srv.uploaded)).Equal("payload")
}

func TestRun_ExistingWithoutOverwrite(t *testing.T) {
	clearEnv(t)
	srv := newFakeServer(t, []map[string]any{
		{"id": 7, "name": "app.bin", "browser_download_url": "https://example.com/old"},
	})

	err := cli.Run(context.Background(), []string{
		"uprel",
		"--token", "test-token",
		"--github-api-url", srv.URL,
		"--repo-name", "octo/hello",
		"--file", writeAsset(t),
		"--tag", "v1.2.3",
		"--asset-name", "app.bin",
	})
	gt.True(t, errors.Is(err, cli.ErrRunFailed))
	gt.Number(t, srv.deleted).Equal(0)
	gt.Value(t, srv.uploaded).Nil()
}

func TestRun_MissingToken(t *testing.T) {
	clearEnv(t)

	err := cli.Run(context.Background(), []string{
		"uprel",
		"--repo-name", "octo/hello",
		"--file", writeAsset(t),
		"--tag", "v1.2.3",
		"--asset-name", "app.bin",
	})
	gt.True(t, errors.Is(err, cli.ErrRunFailed))
}

func TestRun_InvalidLogLevel(t *testing.T) {
	clearEnv(t)

	err := cli.Run(context.Background(), []string{"uprel", "--log-level", "verbose"})
	gt.Error(t, err)
}
