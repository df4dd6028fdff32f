package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/harrylevesque/ordercode/internal/models"
	"github.com/harrylevesque/ordercode/internal/utils"
)

// Sender posts codes to the relay's submission endpoint.
type Sender struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewSender returns a Sender for url. A nil client means http.DefaultClient,
// which has no timeout.
func NewSender(url string, client *http.Client, logger *slog.Logger) *Sender {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = utils.Discard()
	}
	return &Sender{url: url, client: client, logger: logger}
}

// Send posts {"digits": digits}. Only transport failures are errors; the
// response status and body are not inspected.
func (s *Sender) Send(ctx context.Context, digits string) error {
	body, err := models.EncodeSendRequest(digits)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	s.logger.Debug("code sent", "digits", digits, "status", resp.StatusCode)
	return nil
}
