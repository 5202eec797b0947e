package chatwebhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// mockLogger implements log.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

func testClient(t *testing.T) IChatWebhook {
	t.Helper()
	c, err := New(&mockLogger{}, Config{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("posts block payload", func(t *testing.T) {
		var got Payload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %s", ct)
			}
			if ua := r.Header.Get("User-Agent"); ua != UserAgent {
				t.Errorf("user agent = %s", ua)
			}
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := testClient(t)
		defer client.Close()

		err := client.Send(ctx, srv.URL, Message{
			Title:      "Form submitted on Spring Launch",
			Text:       "Jane Doe submitted the contact form.",
			Fields:     []Field{{Label: "Name", Value: "Jane Doe"}, {Label: "Email", Value: "jane@acme.com"}},
			ActionText: "Open dashboard",
			ActionURL:  "https://app.example.com/alerts",
		})
		if err != nil {
			t.Fatalf("Send: %v", err)
		}

		if len(got.Blocks) != 4 {
			t.Fatalf("blocks = %d, want 4", len(got.Blocks))
		}
		if got.Blocks[0].Type != "header" || got.Blocks[0].Text.Text != "Form submitted on Spring Launch" {
			t.Errorf("header block = %+v", got.Blocks[0])
		}
		if got.Blocks[1].Type != "section" || got.Blocks[1].Text.Type != "mrkdwn" {
			t.Errorf("text block = %+v", got.Blocks[1])
		}
		if len(got.Blocks[2].Fields) != 2 || !strings.Contains(got.Blocks[2].Fields[0].Text, "Jane Doe") {
			t.Errorf("fields block = %+v", got.Blocks[2])
		}
		if got.Blocks[3].Type != "actions" || got.Blocks[3].Elements[0].URL != "https://app.example.com/alerts" {
			t.Errorf("actions block = %+v", got.Blocks[3])
		}
	})

	t.Run("omits optional blocks", func(t *testing.T) {
		var got Payload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := testClient(t)
		defer client.Close()

		if err := client.Send(ctx, srv.URL, Message{Title: "Hi", Text: "there"}); err != nil {
			t.Fatalf("Send: %v", err)
		}
		if len(got.Blocks) != 2 {
			t.Errorf("blocks = %d, want 2", len(got.Blocks))
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no_service", http.StatusGone)
		}))
		defer srv.Close()

		client := testClient(t)
		defer client.Close()

		err := client.Send(ctx, srv.URL, Message{Title: "Hi", Text: "there"})
		if err == nil {
			t.Fatal("expected error on 410")
		}
		if !strings.Contains(err.Error(), "410") {
			t.Errorf("error %q should carry the status code", err)
		}
	})

	t.Run("rejects bad URLs", func(t *testing.T) {
		client := testClient(t)
		defer client.Close()

		if err := client.Send(ctx, "", Message{}); err == nil {
			t.Error("empty URL must fail")
		}
		if err := client.Send(ctx, "ftp://example.com", Message{}); err == nil {
			t.Error("non-http URL must fail")
		}
	})
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", MaxHeaderLen+50)
	got := truncate(long, MaxHeaderLen)
	if len(got) != MaxHeaderLen {
		t.Errorf("len = %d, want %d", len(got), MaxHeaderLen)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated text should end with ellipsis")
	}
	if truncate("short", MaxHeaderLen) != "short" {
		t.Error("short text must pass through")
	}
}
