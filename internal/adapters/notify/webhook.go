package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/uuid"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

// WebhookConfig captures how to reach the mail relay webhook.
type WebhookConfig struct {
	URL        string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// WebhookNotifier posts each code delivery as JSON to a relay that owns the
// actual mail channel.
type WebhookNotifier struct {
	url        string
	retryLimit int
	client     *http.Client
}

var _ ports.CodeNotifier = (*WebhookNotifier)(nil)

type webhookPayload struct {
	DeliveryID string `json:"deliveryId"`
	Identifier string `json:"identifier"`
	Purpose    string `json:"purpose"`
	Code       string `json:"code"`
	ExpiresAt  string `json:"expiresAt"`
}

// NewWebhookNotifier builds a webhook notifier. The URL is required.
func NewWebhookNotifier(cfg WebhookConfig) (*WebhookNotifier, error) {
	target := strings.TrimSpace(cfg.URL)
	if target == "" {
		return nil, errors.New("notify webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &WebhookNotifier{
		url:        target,
		retryLimit: max(cfg.RetryLimit, 0),
		client:     hc,
	}, nil
}

// Deliver posts the code, retrying transport failures and 5xx answers.
// The delivery id stays the same across retries so the relay can deduplicate.
func (n *WebhookNotifier) Deliver(ctx context.Context, in ports.CodeDelivery) error {
	body, err := json.Marshal(webhookPayload{
		DeliveryID: uuid.NewString(),
		Identifier: in.Identifier,
		Purpose:    string(in.Purpose),
		Code:       in.Code,
		ExpiresAt:  in.ExpiresAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	return backoff.Retry(func() error {
		return n.post(ctx, body)
	}, backoff.WithContext(n.retryPolicy(), ctx))
}

// retryPolicy allows retryLimit retries after the first attempt.
// WithMaxRetries treats 0 as unlimited, so a zero limit stops straight away.
func (n *WebhookNotifier) retryPolicy() backoff.BackOff {
	if n.retryLimit == 0 {
		return &backoff.StopBackOff{}
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 0
	return backoff.WithMaxRetries(bo, uint64(n.retryLimit))
}

func (n *WebhookNotifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create webhook request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return backoff.Permanent(fmt.Errorf("drain webhook response body: %w", err))
		}
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	statusErr := fmt.Errorf("notify webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	if resp.StatusCode < 500 {
		return backoff.Permanent(statusErr)
	}
	return statusErr
}
