package store

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Compile-time interface verification.
var _ Sink = (*WebhookSink)(nil)

// event is the payload delivered to the webhook endpoint.
type event struct {
	Type        string `json:"type"` // "article.saved" or "digest.saved"
	URL         string `json:"url"`
	Content     string `json:"content,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Translation string `json:"translation,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// WebhookSink delivers results to an external HTTP endpoint. Bodies are
// signed with HMAC-SHA256 when a secret is configured, via the
// X-Skim-Signature header.
type WebhookSink struct {
	endpoint string
	secret   string
	client   *http.Client
}

// NewWebhookSink creates a sink posting to endpoint.
func NewWebhookSink(endpoint, secret string) *WebhookSink {
	return &WebhookSink{
		endpoint: endpoint,
		secret:   secret,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SaveArticle delivers the full text event.
func (w *WebhookSink) SaveArticle(ctx context.Context, url, text string) error {
	return w.deliver(ctx, &event{
		Type:      "article.saved",
		URL:       url,
		Content:   text,
		Timestamp: time.Now().Unix(),
	})
}

// SaveDigest delivers the summary/translation event.
func (w *WebhookSink) SaveDigest(ctx context.Context, url, summary, translation string) error {
	return w.deliver(ctx, &event{
		Type:        "digest.saved",
		URL:         url,
		Summary:     summary,
		Translation: translation,
		Timestamp:   time.Now().Unix(),
	})
}

func (w *WebhookSink) deliver(ctx context.Context, ev *event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return storageError("webhook encode", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return storageError("webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Skim-Webhook/1.0")

	if w.secret != "" {
		mac := hmac.New(sha256.New, []byte(w.secret))
		mac.Write(body)
		req.Header.Set("X-Skim-Signature", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return storageError("webhook delivery", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return storageError("webhook delivery", fmt.Errorf("endpoint returned status %d", resp.StatusCode))
	}
	return nil
}
