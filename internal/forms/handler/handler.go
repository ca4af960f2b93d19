package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_gateway/internal/forms/service"
	"storefront_gateway/internal/forms/transport"
	"storefront_gateway/platform/httpkit"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for contact forms.
type Handler struct {
	svc *service.Service
}

// New creates a new forms handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// SubmitQuote forwards a quote request.
// POST /api/v1/forms/quote
func (h *Handler) SubmitQuote(c *gin.Context) {
	var req transport.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.SubmitQuote(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// SubmitComment forwards a comment.
// POST /api/v1/forms/comment
func (h *Handler) SubmitComment(c *gin.Context) {
	var req transport.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.SubmitComment(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}
