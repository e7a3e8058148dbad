package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Write([]byte("# Changelog\n\n## [1.2.0]\n\n- a change\n"))
	}))
	defer server.Close()

	doc, err := NewChangelogHTTPAdapter(server.URL, "token-123", 5).FetchDocument(context.Background())
	require.NoError(t, err)
	assert.Contains(t, doc, "## [1.2.0]")
}

func TestFetchDocumentNoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte("doc"))
	}))
	defer server.Close()

	doc, err := NewChangelogHTTPAdapter(server.URL, "", 5).FetchDocument(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "doc", doc)
}

func TestFetchDocumentEmptyURL(t *testing.T) {
	_, err := NewChangelogHTTPAdapter("", "", 5).FetchDocument(context.Background())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeUnavailable, errbuilder.CodeOf(err))
}

func TestFetchDocumentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewChangelogHTTPAdapter(server.URL, "", 5).FetchDocument(context.Background())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeUnavailable, errbuilder.CodeOf(err))
}
