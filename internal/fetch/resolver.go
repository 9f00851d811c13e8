package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResolveBody caps how much of a resolution response is read; the body is
// a single URL.
const maxResolveBody = 64 * 1024

// Resolver exchanges one-time authorization links for direct-download URLs.
type Resolver struct {
	client *http.Client
}

// NewResolver creates a Resolver. A nil client gets NewHTTPClient(DefaultTimeout).
func NewResolver(client *http.Client) *Resolver {
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	return &Resolver{client: client}
}

// Resolve POSTs to the authorization link and returns the trimmed response
// body, which is the temporary direct-download URL.
func (r *Resolver) Resolve(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, link, http.NoBody)
	if err != nil {
		return "", &ResolutionError{Link: link, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &ResolutionError{Link: link, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResolveBody))
		return "", &ResolutionError{Link: link, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResolveBody))
	if err != nil {
		return "", &ResolutionError{Link: link, Err: fmt.Errorf("read body: %w", err)}
	}
	direct := strings.TrimSpace(string(body))
	if direct == "" {
		return "", &ResolutionError{Link: link, Err: errors.New("empty download url")}
	}
	return direct, nil
}
