package chatwebhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

func isValidURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// buildPayload renders a Message into the block-structured body:
// a header block, a text section, an optional fields section, and an
// optional actions block with one link button.
func buildPayload(msg Message) *Payload {
	blocks := []Block{
		{
			Type: "header",
			Text: &TextObject{Type: "plain_text", Text: truncate(msg.Title, MaxHeaderLen), Emoji: true},
		},
		{
			Type: "section",
			Text: &TextObject{Type: "mrkdwn", Text: truncate(msg.Text, MaxSectionLen)},
		},
	}

	if len(msg.Fields) > 0 {
		fields := make([]TextObject, 0, len(msg.Fields))
		for _, f := range msg.Fields {
			fields = append(fields, TextObject{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*%s:*\n%s", f.Label, f.Value),
			})
		}
		blocks = append(blocks, Block{Type: "section", Fields: fields})
	}

	if msg.ActionURL != "" {
		text := msg.ActionText
		if text == "" {
			text = "View"
		}
		blocks = append(blocks, Block{
			Type: "actions",
			Elements: []ButtonElement{
				{
					Type: "button",
					Text: &TextObject{Type: "plain_text", Text: text, Emoji: true},
					URL:  msg.ActionURL,
				},
			},
		})
	}

	return &Payload{Blocks: blocks}
}

func (c *chatImpl) Send(ctx context.Context, webhookURL string, msg Message) error {
	if webhookURL == "" {
		return fmt.Errorf("chatwebhook: webhook URL is required")
	}
	if !isValidURL(webhookURL) {
		return fmt.Errorf("chatwebhook: invalid webhook URL %q", webhookURL)
	}

	return c.sendRequest(ctx, webhookURL, buildPayload(msg))
}

func (c *chatImpl) sendRequest(ctx context.Context, url string, payload *Payload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("chatwebhook: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("chatwebhook: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("chatwebhook: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("chatwebhook: endpoint returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *chatImpl) Close() error {
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	return nil
}
