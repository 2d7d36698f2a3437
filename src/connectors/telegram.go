// REST CLIENT FOR THE TELEGRAM BOT API
// RESTY ONLY, NO RETRY
package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

const (
	defaultTelegramBaseURL = "https://api.telegram.org"
	ParseModeMarkdown      = "Markdown"
)

// -----------------------------
// API TYPES
// -----------------------------
type telegramResponse struct {
	OK          bool            `json:"ok"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

type TelegramUpdate struct {
	UpdateID    int64            `json:"update_id"`
	Message     *TelegramMessage `json:"message,omitempty"`
	ChannelPost *TelegramMessage `json:"channel_post,omitempty"`
}

// Post returns the message carried by the update, if any.
func (u TelegramUpdate) Post() *TelegramMessage {
	if u.Message != nil {
		return u.Message
	}
	return u.ChannelPost
}

type TelegramMessage struct {
	MessageID       int64         `json:"message_id"`
	Date            int64         `json:"date"`
	Chat            TelegramChat  `json:"chat"`
	From            *TelegramUser `json:"from,omitempty"`
	AuthorSignature string        `json:"author_signature,omitempty"`
	Text            string        `json:"text,omitempty"`
	Caption         string        `json:"caption,omitempty"`
}

// Body is the message text, or the caption for media posts.
func (m TelegramMessage) Body() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// SenderName prefers the username, then the first name, then the channel
// signature or title.
func (m TelegramMessage) SenderName() string {
	if m.From != nil {
		if m.From.Username != "" {
			return m.From.Username
		}
		if m.From.FirstName != "" {
			return m.From.FirstName
		}
	}
	if m.AuthorSignature != "" {
		return m.AuthorSignature
	}
	return m.Chat.Title
}

type TelegramChat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Username string `json:"username,omitempty"`
}

type TelegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// -----------------------------
// CLIENT
// -----------------------------
type TelegramClient struct {
	token string
	http  *resty.Client
}

func NewTelegramClient(token, baseURL string, timeout time.Duration) *TelegramClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultTelegramBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if token == "" {
		logger.Warn("No bot token provided, Telegram calls will fail")
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0)

	return &TelegramClient{token: token, http: httpClient}
}

func (c *TelegramClient) call(ctx context.Context, method string, body interface{}, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("token", c.token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/bot{token}/" + method)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}

	var tr telegramResponse
	if err := json.Unmarshal(resp.Body(), &tr); err != nil {
		return fmt.Errorf("telegram %s: HTTP %d: %s", method, resp.StatusCode(), string(resp.Body()))
	}
	if !tr.OK {
		return fmt.Errorf("telegram %s: %d %s", method, tr.ErrorCode, tr.Description)
	}

	if out != nil && len(tr.Result) > 0 {
		return json.Unmarshal(tr.Result, out)
	}
	return nil
}

// -----------------------------
// METHODS
// -----------------------------

// Timeout is the HTTP deadline applied to every call, long polls included.
func (c *TelegramClient) Timeout() time.Duration {
	return c.http.GetClient().Timeout
}

// SendMessage makes exactly one sendMessage call.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID, text, parseMode string) error {
	body := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	if parseMode != "" {
		body["parse_mode"] = parseMode
	}
	return c.call(ctx, "sendMessage", body, nil)
}

// Send delivers a Markdown notification.
func (c *TelegramClient) Send(ctx context.Context, chatID, text string) error {
	return c.SendMessage(ctx, chatID, text, ParseModeMarkdown)
}

// GetUpdates long-polls for new messages and channel posts after offset.
func (c *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]TelegramUpdate, error) {
	body := map[string]interface{}{
		"offset":          offset,
		"timeout":         int(timeout.Seconds()),
		"allowed_updates": []string{"message", "channel_post"},
	}

	var updates []TelegramUpdate
	if err := c.call(ctx, "getUpdates", body, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// ChatIDString renders a numeric chat id the way it is configured.
func ChatIDString(id int64) string {
	return strconv.FormatInt(id, 10)
}
