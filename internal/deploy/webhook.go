// Package deploy triggers a rebuild of the static site.
package deploy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Webhook fires a build hook. Delivery is at most once: the call is not
// retried and the build itself is never awaited.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Notify POSTs an empty body to the hook URL.
func (w *Webhook) Notify(ctx context.Context) error {
	if w.url == "" {
		return fmt.Errorf("deploy webhook misconfigured: empty url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, http.NoBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("deploy hook error: %s", resp.Status)
	}
	return nil
}
