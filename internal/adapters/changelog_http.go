package adapters

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"bundle-release/internal/ports"
	"bundle-release/internal/shared"
)

// ChangelogHTTPAdapter fetches the raw changelog document from a single
// URL. Callers treat any failure as "no document": release notes are a
// best-effort enhancement, never a correctness requirement.
type ChangelogHTTPAdapter struct {
	URL     string
	Token   string
	Timeout time.Duration
}

func NewChangelogHTTPAdapter(url string, token string, timeoutSec int) ChangelogHTTPAdapter {
	return ChangelogHTTPAdapter{
		URL:     url,
		Token:   token,
		Timeout: normalizeTimeout(timeoutSec),
	}
}

func (a ChangelogHTTPAdapter) FetchDocument(ctx context.Context) (string, error) {
	url := strings.TrimSpace(a.URL)
	if url == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("changelog url is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create changelog request").
			WithCause(err)
	}
	if strings.TrimSpace(a.Token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(a.Token))
	}
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("changelog unavailable").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("changelog unavailable").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("failed to read changelog response").
			WithCause(err)
	}
	return string(body), nil
}

var _ ports.ChangelogPort = ChangelogHTTPAdapter{}
