package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"kudos/internal/domain/directory"
	"kudos/internal/domain/recognition"
)

const anonymousSenderName = "An anonymous colleague"

// Dispatcher posts newly created recognitions to Slack and Teams webhooks.
// Delivery is best effort: only PUBLIC recognitions go out, and a failed or
// disabled delivery never reaches the creation path. Settings may be swapped
// at runtime via Apply or the file watcher.
type Dispatcher struct {
	mu       sync.RWMutex
	settings Settings

	client *http.Client
	log    *slog.Logger
}

func NewDispatcher(settings Settings, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		settings: settings,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

// Apply swaps the active settings. Safe concurrently with Notify.
func (d *Dispatcher) Apply(settings Settings) {
	d.mu.Lock()
	d.settings = settings
	d.mu.Unlock()
	d.log.Info("webhook settings applied",
		"slack", settings.Slack.Enabled,
		"teams", settings.Teams.Enabled)
}

func (d *Dispatcher) current() Settings {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings
}

// Notify implements recognition.Notifier. The PUBLIC-only policy lives here,
// not in the orchestrator.
func (d *Dispatcher) Notify(ctx context.Context, rec recognition.Recognition, sender, recipient directory.Employee) error {
	if rec.Visibility != recognition.VisibilityPublic {
		d.log.Debug("skipping webhook for non-public recognition", "recognition", rec.ID)
		return nil
	}

	settings := d.current()
	senderName := sender.Name
	if rec.IsAnonymous {
		senderName = anonymousSenderName
	}

	var errs []error
	if settings.Slack.Enabled {
		if err := d.post(ctx, settings.Slack.URL, slackPayload(senderName, recipient.Name, rec.Message)); err != nil {
			errs = append(errs, fmt.Errorf("slack: %w", err))
		}
	}
	if settings.Teams.Enabled {
		if err := d.post(ctx, settings.Teams.URL, teamsPayload(senderName, recipient.Name, rec.Message)); err != nil {
			errs = append(errs, fmt.Errorf("teams: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil && settings.logFailures() {
		d.log.Warn("webhook delivery failed", "recognition", rec.ID, "err", err)
	}
	return err
}

func (d *Dispatcher) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

func slackPayload(senderName, recipientName, message string) map[string]string {
	return map[string]string{
		"text": fmt.Sprintf("*%s* sent a new recognition to *%s*! :tada:\n> %s", senderName, recipientName, message),
	}
}

func teamsPayload(senderName, recipientName, message string) map[string]any {
	return map[string]any{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": "0076D7",
		"summary":    fmt.Sprintf("%s sent a recognition to %s", senderName, recipientName),
		"sections": []map[string]any{
			{
				"activityTitle":    fmt.Sprintf("New Recognition for %s!", recipientName),
				"activitySubtitle": fmt.Sprintf("From: **%s**", senderName),
				"facts": []map[string]string{
					{"name": "Recipient:", "value": recipientName},
					{"name": "Message:", "value": message},
				},
				"markdown": true,
			},
		},
	}
}
