package botclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"cardshop-bot/internal/domain"
	"cardshop-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure BotClientAdapter implements the output port
var _ output.BotClient = (*BotClientAdapter)(nil)

// BotClientAdapter struct - Output adapter for the chat platform's bot API
type BotClientAdapter struct {
	httpClient *http.Client
	baseURL    string
}

// NewBotClientAdapter func - Creates new bot client adapter.
// baseURL points at the platform API root including the bot token segment.
func NewBotClientAdapter(baseURL string) (*BotClientAdapter, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("bot API base URL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("Bot client adapter initialized with base URL: %s", baseURL)

	return &BotClientAdapter{
		httpClient: httpClient,
		baseURL:    baseURL,
	}, nil
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// SendMessage delivers a plain-text reply to a chat
func (a *BotClientAdapter) SendMessage(reply domain.Reply) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID: reply.ChatID,
		Text:   reply.Text,
	})
	if err != nil {
		return fmt.Errorf("encoding sendMessage request: %w", err)
	}

	resp, err := a.httpClient.Post(a.baseURL+"/sendMessage", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("bot API returned status %d: %s", resp.StatusCode, string(payload))
	}
	return nil
}
