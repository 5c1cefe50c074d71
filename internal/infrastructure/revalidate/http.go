// Package revalidate asks the public site to rebuild pages after content changes.
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type revalidateRequest struct {
	Path   string `json:"path"`
	Secret string `json:"secret"`
}

// HTTPRevalidator posts {path, secret} to the site's revalidation endpoint.
type HTTPRevalidator struct {
	url    string
	secret string
	client *http.Client
}

func NewHTTPRevalidator(url, secret string, timeout time.Duration) *HTTPRevalidator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPRevalidator{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: timeout},
	}
}

func (r *HTTPRevalidator) Revalidate(ctx context.Context, path string) error {
	b, err := json.Marshal(revalidateRequest{Path: path, Secret: r.secret})
	if err != nil {
		return fmt.Errorf("marshal revalidate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("call revalidate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("revalidate %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}
