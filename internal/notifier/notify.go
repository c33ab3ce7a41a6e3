package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// SecurityEvent is the payload posted to the configured webhook when the
// service detects something an operator should look at, currently reuse of a
// rotated refresh token.
type SecurityEvent struct {
	Event     string `json:"event"`
	UserId    string `json:"userId"`
	TokenId   string `json:"tokenId"`
	Timestamp string `json:"timestamp"`
}

type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewWebhookNotifier(url string, timeout time.Duration, logger *zap.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// NotifyTokenReuse reports a revoked refresh token being presented again.
// Delivery is fire-and-forget: the auth outcome never waits on the webhook,
// and delivery failures are logged, not propagated.
func (n *WebhookNotifier) NotifyTokenReuse(userId string, tokenId string) {
	if n.url == "" {
		return
	}

	event := &SecurityEvent{
		Event:     "refresh_token_reuse",
		UserId:    userId,
		TokenId:   tokenId,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	go func() {
		if err := n.post(event); err != nil {
			n.logger.Error("security webhook delivery failed", zap.Error(err))
		}
	}()
}

func (n *WebhookNotifier) post(event *SecurityEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding security event: %w", err)
	}

	response, err := n.client.Post(n.url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("posting security event: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		return fmt.Errorf("security webhook returned %d", response.StatusCode)
	}

	return nil
}
