package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

func isValidURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (w *webhookImpl) Send(ctx context.Context, url string, env Envelope) error {
	if url == "" {
		return fmt.Errorf("webhook: URL is required")
	}
	if !isValidURL(url) {
		return fmt.Errorf("webhook: invalid URL %q", url)
	}

	jsonData, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("webhook: failed to marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("webhook: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook: endpoint returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (w *webhookImpl) Close() error {
	if w.client != nil {
		w.client.CloseIdleConnections()
	}
	return nil
}
