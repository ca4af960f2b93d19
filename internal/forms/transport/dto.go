package transport

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Quote requests

// QuoteRequest asks the shop for a price on a product. Field order is the
// order in which missing fields are reported.
type QuoteRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contactemail"`
	Phone   string `json:"phone" validate:"required"`
	City    string `json:"city" validate:"required"`
	Product string `json:"product" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Comments

// CommentRequest is a free-form message to the shop.
type CommentRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contactemail"`
	Message string `json:"message" validate:"required"`
}

// SubmissionResponse is returned after the upstream service accepted a form.
type SubmissionResponse struct {
	Reference uuid.UUID       `json:"reference"`
	Kind      string          `json:"kind"`
	Upstream  json.RawMessage `json:"upstream,omitempty"`
}
