package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ainewshub/internal/ports"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// Sender posts MarkdownV2 messages to a Telegram chat via the bot API.
type Sender struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

var _ ports.Notifier = (*Sender)(nil)

// NewSender registers bot token and chat identifier. baseURL may be empty;
// it exists so tests can point the sender at a local server.
func NewSender(botToken, chatID, baseURL string, timeout time.Duration) *Sender {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sender{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both bot token and chat id are present.
func (s *Sender) Configured() bool {
	return s.botToken != "" && s.chatID != ""
}

// Send posts one message. Non-2xx responses are returned as errors with
// status and a body snippet for diagnostics.
func (s *Sender) Send(ctx context.Context, text string) error {
	if !s.Configured() {
		return fmt.Errorf("telegram sender misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"chat_id":                  s.chatID,
		"text":                     text,
		"parse_mode":               "MarkdownV2",
		"disable_web_page_preview": false,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	return nil
}
