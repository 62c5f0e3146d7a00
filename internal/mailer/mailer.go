// Package mailer posts notifications to an external email-sending
// endpoint. Sends are fire-and-forget: failures are logged and never
// block the workflow that triggered them.
package mailer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/riversidetc/club-api/internal/config"
)

type Mailer struct {
	endpoint string
	from     string
	client   *http.Client
}

func New(conf *config.MailerConfig) *Mailer {
	return &Mailer{
		endpoint: conf.Endpoint,
		from:     conf.From,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send posts one message. Errors are swallowed after logging; a missing
// endpoint disables sending entirely.
func (m *Mailer) Send(to, subject, body string) {
	if m.endpoint == "" {
		return
	}

	payload, err := json.Marshal(message{
		From:    m.from,
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		zap.L().Warn("mailer: failed to encode message", zap.Error(err))
		return
	}

	resp, err := m.client.Post(m.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		zap.L().Warn("mailer: send failed", zap.String("to", to), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		zap.L().Warn("mailer: send rejected",
			zap.String("to", to),
			zap.Int("status", resp.StatusCode))
	}
}
