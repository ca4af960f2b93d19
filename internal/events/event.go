// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"storefront_gateway/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Forms Domain Events
// =============================================================================

// QuoteSubmitted is published after the upstream service accepted a quote request.
type QuoteSubmitted struct {
	BaseEvent
	Reference uuid.UUID `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Product   string    `json:"product"`
	Message   string    `json:"message"`
}

func (e QuoteSubmitted) EventName() string { return "forms.quote.submitted" }

// CommentSubmitted is published after the upstream service accepted a comment.
type CommentSubmitted struct {
	BaseEvent
	Reference uuid.UUID `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
}

func (e CommentSubmitted) EventName() string { return "forms.comment.submitted" }
