package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Bot is the part of the Telegram Bot API the payment flow calls
type Bot interface {
	CreateInvoiceLink(ctx context.Context, invoice Invoice) (string, error)
	AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage string) error
}

// BotClient calls the Bot API over HTTPS
type BotClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewBotClient creates a client. An empty baseURL uses DefaultAPIBaseURL.
func NewBotClient(baseURL, token string, timeout time.Duration) *BotClient {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &BotClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateInvoiceLink returns a t.me invoice URL the mini app can open
func (c *BotClient) CreateInvoiceLink(ctx context.Context, invoice Invoice) (string, error) {
	var link string
	if err := c.call(ctx, methodCreateInvoiceLink, invoice, &link); err != nil {
		return "", err
	}
	return link, nil
}

// AnswerPreCheckoutQuery approves or rejects an order
func (c *BotClient) AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage string) error {
	body := map[string]any{
		"pre_checkout_query_id": queryID,
		"ok":                    ok,
	}
	if !ok {
		body["error_message"] = errorMessage
	}
	return c.call(ctx, methodAnswerPreCheckoutQuery, body, nil)
}

func (c *BotClient) call(ctx context.Context, method string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url embeds the bot token; keep it out of errors
		return fmt.Errorf("%s: %s request failed", ErrMsgBotAPI, method)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%s: %s: status %d", ErrMsgBotAPI, method, resp.StatusCode)
	}
	if !out.OK {
		return fmt.Errorf("%s: %s: %s", ErrMsgBotAPI, method, out.Description)
	}
	if result != nil {
		if err := json.Unmarshal(out.Result, result); err != nil {
			return fmt.Errorf("%s: %s: decode result: %w", ErrMsgBotAPI, method, err)
		}
	}
	return nil
}
