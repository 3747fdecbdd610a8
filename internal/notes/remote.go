package notes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultRemoteTimeout is the default timeout for remote notes fetches.
const DefaultRemoteTimeout = 5 * time.Second

// FetchRemote downloads and parses a release-notes file from a raw URL.
// The context controls timeout and cancellation.
func FetchRemote(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote notes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return Parse(strings.NewReader(string(body)), url)
}

// FetchRemoteWithFallback fetches notes from a URL, falling back to the local
// document when the fetch fails. Returns the document and a boolean
// indicating whether it came from the remote.
func FetchRemoteWithFallback(ctx context.Context, url string, local *Document) (*Document, bool, error) {
	doc, err := FetchRemote(ctx, url)
	if err == nil {
		return doc, true, nil
	}
	if local == nil {
		return nil, false, fmt.Errorf("remote fetch failed and no local copy exists: %w", err)
	}
	return local, false, nil
}
