package email

import (
	"context"

	"storefront_gateway/platform/config"
)

// QuoteNotification carries an accepted quote request to the shop inbox.
type QuoteNotification struct {
	Reference string
	Name      string
	Email     string
	Phone     string
	City      string
	Product   string
	Message   string
}

// CommentNotification carries an accepted comment to the shop inbox.
type CommentNotification struct {
	Reference string
	Name      string
	Email     string
	Message   string
}

// Sender delivers form notifications.
type Sender interface {
	SendQuoteNotification(ctx context.Context, n QuoteNotification) error
	SendCommentNotification(ctx context.Context, n CommentNotification) error
}

type NoopSender struct{}

func (NoopSender) SendQuoteNotification(ctx context.Context, n QuoteNotification) error {
	return nil
}

func (NoopSender) SendCommentNotification(ctx context.Context, n CommentNotification) error {
	return nil
}

// NewSender returns an SMTP sender when mail is configured, a no-op otherwise.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
		cfg.GetEmailNotifyAddress(),
	)
}
