package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"manga_tracker/internal/domain"
)

// Discord caps a single message at this many embeds; beyond that the batch
// gets a summary line instead of one embed per chapter.
const maxEmbeds = 10

const embedColor = 0x2ecc71

// Webhook posts new-chapter batches to a Discord-compatible webhook URL.
type Webhook struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewWebhook(url string, timeout time.Duration, logger *slog.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp,omitempty"`
}

func (w *Webhook) Notify(ctx context.Context, chapters []domain.NewChapterSummary) error {
	if len(chapters) == 0 {
		return nil
	}

	payload := buildPayload(chapters)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	w.logger.Info("webhook delivered", "chapters", len(chapters))
	return nil
}

func buildPayload(chapters []domain.NewChapterSummary) webhookPayload {
	payload := webhookPayload{
		Content: fmt.Sprintf("Found %d new chapter(s)", len(chapters)),
	}

	shown := chapters
	if len(shown) > maxEmbeds {
		shown = shown[:maxEmbeds]
	}

	for _, c := range shown {
		title := fmt.Sprintf("%s - Chapter %s", c.TargetTitle, c.Number)
		description := c.SiteName
		if c.Title != nil && *c.Title != "" {
			description = fmt.Sprintf("%s (%s)", *c.Title, c.SiteName)
		}
		payload.Embeds = append(payload.Embeds, embed{
			Title:       title,
			Description: description,
			URL:         c.URL,
			Color:       embedColor,
			Timestamp:   c.DetectedAt.UTC().Format(time.RFC3339),
		})
	}

	if rest := len(chapters) - len(shown); rest > 0 {
		payload.Content = fmt.Sprintf("Found %d new chapter(s) (%d more not shown)", len(chapters), rest)
	}

	return payload
}
