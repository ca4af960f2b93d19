// Package notification sends mail in response to domain events so that the
// forms module never talks to the mail provider directly.
package notification

import (
	"context"

	"storefront_gateway/internal/email"
	"storefront_gateway/internal/events"
	"storefront_gateway/platform/logger"
)

// Module handles form events by notifying the shop inbox.
type Module struct {
	sender email.Sender
	log    *logger.Logger
}

// New creates the notification module. A nil sender disables mail.
func New(sender email.Sender, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Module{sender: sender, log: log}
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.QuoteSubmitted{}.EventName(), m)
	bus.Subscribe(events.CommentSubmitted{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.QuoteSubmitted:
		return m.handleQuoteSubmitted(ctx, e)
	case events.CommentSubmitted:
		return m.handleCommentSubmitted(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleQuoteSubmitted(ctx context.Context, e events.QuoteSubmitted) error {
	err := m.sender.SendQuoteNotification(ctx, email.QuoteNotification{
		Reference: e.Reference.String(),
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		City:      e.City,
		Product:   e.Product,
		Message:   e.Message,
	})
	if err != nil {
		m.log.WithContext(ctx).Warn("quote notification not sent", "reference", e.Reference, "error", err)
		return err
	}
	m.log.WithContext(ctx).Info("quote notification sent", "reference", e.Reference)
	return nil
}

func (m *Module) handleCommentSubmitted(ctx context.Context, e events.CommentSubmitted) error {
	err := m.sender.SendCommentNotification(ctx, email.CommentNotification{
		Reference: e.Reference.String(),
		Name:      e.Name,
		Email:     e.Email,
		Message:   e.Message,
	})
	if err != nil {
		m.log.WithContext(ctx).Warn("comment notification not sent", "reference", e.Reference, "error", err)
		return err
	}
	m.log.WithContext(ctx).Info("comment notification sent", "reference", e.Reference)
	return nil
}

var _ events.Handler = (*Module)(nil)
