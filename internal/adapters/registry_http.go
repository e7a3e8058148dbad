package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"bundle-release/internal/ports"
	"bundle-release/internal/shared"
	"bundle-release/internal/types"
)

// RegistryHTTPAdapter talks to a container registry over the v2 HTTP API:
// tags/list for published versions and a manifests HEAD request for the
// content digest.
type RegistryHTTPAdapter struct {
	Endpoint   string
	Username   string
	APIKey     string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

const defaultRegistryTimeout = 30 * time.Second
const defaultRegistryRetries = 3
const defaultRegistryRetryDelay = 200 * time.Millisecond
const maxRegistryRetryDelay = 2 * time.Second

// versionTagPattern admits only semantic version tags; lineage tags such
// as "latest" or architecture tags never reach the selector.
var versionTagPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z][0-9A-Za-z.]*)?$`)

func NewRegistryHTTPAdapter(endpoint string, username string, apiKey string, timeoutSec int, retries int, retryDelayMs int) RegistryHTTPAdapter {
	return RegistryHTTPAdapter{
		Endpoint:   endpoint,
		Username:   username,
		APIKey:     apiKey,
		Timeout:    normalizeTimeout(timeoutSec),
		Retries:    normalizeRetries(retries),
		RetryDelay: normalizeRetryDelay(retryDelayMs),
	}
}

type tagsListResponse struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func (a RegistryHTTPAdapter) ListVersions(ctx context.Context, service string) (types.ServiceVersions, error) {
	if strings.TrimSpace(service) == "" {
		return types.ServiceVersions{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("service name is empty")
	}
	endpoint, err := a.normalizedEndpoint()
	if err != nil {
		return types.ServiceVersions{}, err
	}
	url := fmt.Sprintf("%s/v2/%s/tags/list", endpoint, service)
	body, err := a.getWithRetry(ctx, url)
	if err != nil {
		return types.ServiceVersions{}, err
	}
	var parsed tagsListResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return types.ServiceVersions{}, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg(fmt.Sprintf("invalid tags response for %s", service)).
			WithCause(err)
	}
	versions := types.ServiceVersions{}
	for _, tag := range parsed.Tags {
		if !versionTagPattern.MatchString(tag) {
			continue
		}
		if strings.Contains(tag, "-") {
			versions.PreReleaseTags = append(versions.PreReleaseTags, tag)
			continue
		}
		versions.ReleaseTags = append(versions.ReleaseTags, tag)
	}
	return versions, nil
}

func (a RegistryHTTPAdapter) ResolveDigest(ctx context.Context, image types.ImageRef) (string, error) {
	endpoint, err := a.normalizedEndpoint()
	if err != nil {
		return "", err
	}
	repo := repositoryPath(image)
	if repo == "" || image.Tag == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("image reference %q cannot be resolved", image.String()))
	}
	url := fmt.Sprintf("%s/v2/%s/manifests/%s", endpoint, repo, image.Tag)

	var lastErr error
	for attempt := 0; attempt < a.Retries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		digest, retry, err := a.headDigestOnce(ctx, url)
		if err == nil {
			return digest, nil
		}
		lastErr = err
		if !retry || attempt == a.Retries-1 {
			return "", err
		}
		time.Sleep(a.retryDelay(attempt))
	}
	return "", lastErr
}

func (a RegistryHTTPAdapter) headDigestOnce(ctx context.Context, url string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create registry request").
			WithCause(err)
	}
	req.Header.Set("Accept", strings.Join([]string{
		"application/vnd.docker.distribution.manifest.v2+json",
		"application/vnd.docker.distribution.manifest.list.v2+json",
		"application/vnd.oci.image.manifest.v1+json",
		"application/vnd.oci.image.index.v1+json",
	}, ", "))
	a.setAuth(req)
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", true, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("registry unavailable").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retry := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
		return "", retry, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("digest resolution failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	digest := strings.TrimSpace(resp.Header.Get("Docker-Content-Digest"))
	if digest == "" {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("registry response is missing a content digest").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	return digest, false, nil
}

func (a RegistryHTTPAdapter) getWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < a.Retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		body, retry, err := a.getOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == a.Retries-1 {
			return nil, err
		}
		time.Sleep(a.retryDelay(attempt))
	}
	return nil, lastErr
}

func (a RegistryHTTPAdapter) getOnce(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create registry request").
			WithCause(err)
	}
	a.setAuth(req)
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("registry unavailable").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		retry := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
		return nil, retry, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("registry request failed").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, url, strings.TrimSpace(string(body))))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("failed to read registry response").
			WithCause(err)
	}
	return body, false, nil
}

func (a RegistryHTTPAdapter) setAuth(req *http.Request) {
	if strings.TrimSpace(a.APIKey) == "" {
		return
	}
	user := strings.TrimSpace(a.Username)
	if user == "" {
		user = "api"
	}
	req.SetBasicAuth(user, a.APIKey)
}

func (a RegistryHTTPAdapter) normalizedEndpoint() (string, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(a.Endpoint), "/")
	if endpoint == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry endpoint is empty")
	}
	return endpoint, nil
}

func (a RegistryHTTPAdapter) retryDelay(attempt int) time.Duration {
	delay := a.RetryDelay * time.Duration(1<<attempt)
	if delay > maxRegistryRetryDelay {
		delay = maxRegistryRetryDelay
	}
	return delay
}

// repositoryPath strips the registry host from a repository so the path
// can be used against the v2 API of the configured endpoint.
func repositoryPath(image types.ImageRef) string {
	repo := image.Repository
	if slash := strings.Index(repo, "/"); slash >= 0 {
		host := repo[:slash]
		if strings.Contains(host, ".") || strings.Contains(host, ":") || host == "localhost" {
			return repo[slash+1:]
		}
	}
	return repo
}

func normalizeTimeout(value int) time.Duration {
	timeout := time.Duration(value) * time.Second
	if timeout <= 0 {
		return defaultRegistryTimeout
	}
	return timeout
}

func normalizeRetries(value int) int {
	if value <= 0 {
		return defaultRegistryRetries
	}
	return value
}

func normalizeRetryDelay(value int) time.Duration {
	delay := time.Duration(value) * time.Millisecond
	if delay <= 0 {
		return defaultRegistryRetryDelay
	}
	return delay
}

var _ ports.RegistryPort = RegistryHTTPAdapter{}
