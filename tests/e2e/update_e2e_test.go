package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundle-release/internal/adapters"
	"bundle-release/internal/app"
	"bundle-release/internal/core"
	"bundle-release/tests/testutil"
)

const e2eBundle = `services:
    api:
        image: registry.example.com/acme/api:1.2.0@sha256:aaa
    worker:
        image: registry.example.com/acme/worker:2.0.0@sha256:bbb
`

const e2eManifest = `version: 1.4.2
release_notes: Version 1.4.2
`

const e2eChangelog = `# Changelog

## [1.5.0] - 2026-08-20

- Worker pool rewrite
- Faster API cold starts

## [1.4.2] - 2026-07-30

- Bugfixes
`

// startRegistryMock serves the two v2 API endpoints the updater uses:
// tags/list per service and manifest HEAD per reference.
func startRegistryMock(t *testing.T, tags map[string][]string, digests map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/v2/")
		switch {
		case strings.HasSuffix(path, "/tags/list"):
			name := strings.TrimSuffix(path, "/tags/list")
			list, ok := tags[name]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"name": name, "tags": list})
		case strings.Contains(path, "/manifests/"):
			digest, ok := digests[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Docker-Content-Digest", digest)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestUpdateEndToEnd(t *testing.T) {
	registry := startRegistryMock(t,
		map[string][]string{
			"api":    {"1.2.0", "1.3.0", "latest"},
			"worker": {"2.0.0"},
		},
		map[string]string{
			"acme/api/manifests/1.3.0":    "sha256:new",
			"acme/worker/manifests/2.0.0": "sha256:bbb",
		})
	defer registry.Close()

	changelog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, e2eChangelog)
	}))
	defer changelog.Close()

	dir := t.TempDir()
	bundlePath := testutil.WriteFile(t, dir, "bundle.yaml", e2eBundle)
	manifestPath := testutil.WriteFile(t, dir, "manifest.yaml", e2eManifest)

	service := app.NewService()
	service.Editor = nil

	req := app.UpdateRequest{
		Channel:          "stable",
		BundlePath:       bundlePath,
		ManifestPath:     manifestPath,
		RegistryEndpoint: registry.URL,
		ChangelogURL:     changelog.URL,
		HTTPTimeoutSec:   5,
		HTTPRetries:      1,
		HTTPRetryDelayMs: 10,
	}
	result, err := service.Update(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", result.NextVersion)
	assert.Equal(t, "- Worker pool rewrite\n- Faster API cold starts", result.ReleaseNotes)

	// The files on disk reflect the run.
	bundle, err := adapters.NewBundleFileAdapter().Read(bundlePath)
	require.NoError(t, err)
	api, ok := bundle.Lookup("api")
	require.True(t, ok)
	assert.Equal(t, "registry.example.com/acme/api:1.3.0@sha256:new", api.String())

	manifest, err := adapters.NewManifestFileAdapter().Read(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", manifest.Version)
	assert.Equal(t, "- Worker pool rewrite\n- Faster API cold starts", manifest.ReleaseNotes)

	// A second run over the updated files finds nothing to do and leaves
	// them untouched.
	_, err = service.Update(t.Context(), req)
	require.Error(t, err)
	assert.True(t, core.IsNoChange(err))

	again, err := adapters.NewManifestFileAdapter().Read(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, manifest, again)
}

func TestUpdateEndToEndBeta(t *testing.T) {
	registry := startRegistryMock(t,
		map[string][]string{
			"api":    {"1.2.0", "1.3.0-beta.0", "1.3.0-beta.1"},
			"worker": {"2.0.0"},
		},
		map[string]string{
			"acme/api/manifests/1.3.0-beta.1": "sha256:beta",
			"acme/worker/manifests/2.0.0":     "sha256:bbb",
		})
	defer registry.Close()

	dir := t.TempDir()
	bundlePath := testutil.WriteFile(t, dir, "bundle.yaml", e2eBundle)
	manifestPath := testutil.WriteFile(t, dir, "manifest.yaml", "version: 1.5.0-beta.0\nrelease_notes: Version 1.5.0-beta.0\n")

	service := app.NewService()
	service.Editor = nil

	result, err := service.Update(t.Context(), app.UpdateRequest{
		Channel:          "beta",
		BundlePath:       bundlePath,
		ManifestPath:     manifestPath,
		RegistryEndpoint: registry.URL,
		HTTPTimeoutSec:   5,
		HTTPRetries:      1,
		HTTPRetryDelayMs: 10,
	})
	require.NoError(t, err)

	// api jumps to the 1.3.0-beta.1 pre-release, a minor base advance, so
	// the manifest base moves and the counter resets.
	assert.Equal(t, "1.6.0-beta.0", result.NextVersion)
	assert.Equal(t, "Version 1.6.0-beta.0", result.ReleaseNotes)
}
