// Package service validates contact forms and forwards them upstream.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"storefront_gateway/internal/events"
	"storefront_gateway/internal/forms/transport"
	"storefront_gateway/platform/apiclient"
	"storefront_gateway/platform/apperr"
	"storefront_gateway/platform/config"
	"storefront_gateway/platform/logger"
	"storefront_gateway/platform/phone"
	"storefront_gateway/platform/sanitize"
	platformvalidator "storefront_gateway/platform/validator"
)

const (
	opSubmitQuote   = "submit quote"
	opSubmitComment = "submit comment"

	kindQuote   = "quote"
	kindComment = "comment"

	emailTag = "contactemail"
)

// emailPattern is the local-part@domain.tld check applied to contact email.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Doer sends one upstream request.
type Doer interface {
	Do(ctx context.Context, r apiclient.Request) ([]byte, error)
}

// Publisher announces accepted submissions.
type Publisher interface {
	Publish(ctx context.Context, event events.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, events.Event) {}

// Service provides contact form submission.
type Service struct {
	client Doer
	val    *platformvalidator.Validator
	bus    Publisher
	cfg    config.FormsConfig
	log    *logger.Logger
}

// New creates a new forms service and registers the contact email rule on val.
// A nil bus drops submission events.
func New(client Doer, val *platformvalidator.Validator, bus Publisher, cfg config.FormsConfig, log *logger.Logger) (*Service, error) {
	if err := val.RegisterValidation(emailTag, validContactEmail); err != nil {
		return nil, fmt.Errorf("register %s validation: %w", emailTag, err)
	}
	if bus == nil {
		bus = noopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{client: client, val: val, bus: bus, cfg: cfg, log: log}, nil
}

func validContactEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// SubmitQuote validates and forwards a quote request.
func (s *Service) SubmitQuote(ctx context.Context, req transport.QuoteRequest) (transport.SubmissionResponse, error) {
	normalized := transport.QuoteRequest{
		Name:    sanitize.Whitespace(req.Name),
		Email:   normalizeEmail(req.Email),
		Phone:   sanitize.Whitespace(req.Phone),
		City:    sanitize.Whitespace(req.City),
		Product: sanitize.Whitespace(req.Product),
		Message: sanitize.Text(req.Message),
	}
	if err := s.validate(opSubmitQuote, normalized); err != nil {
		return transport.SubmissionResponse{}, err
	}
	normalized.Phone = phone.NormalizeE164(normalized.Phone, s.cfg.GetPhoneDefaultRegion())

	resp, err := s.forward(ctx, opSubmitQuote, kindQuote, s.cfg.GetQuotePath(), normalized)
	if err != nil {
		return transport.SubmissionResponse{}, err
	}

	s.bus.Publish(ctx, events.QuoteSubmitted{
		BaseEvent: events.NewBaseEvent(),
		Reference: resp.Reference,
		Name:      normalized.Name,
		Email:     normalized.Email,
		Phone:     normalized.Phone,
		City:      normalized.City,
		Product:   normalized.Product,
		Message:   normalized.Message,
	})
	return resp, nil
}

// SubmitComment validates and forwards a comment.
func (s *Service) SubmitComment(ctx context.Context, req transport.CommentRequest) (transport.SubmissionResponse, error) {
	normalized := transport.CommentRequest{
		Name:    sanitize.Whitespace(req.Name),
		Email:   normalizeEmail(req.Email),
		Message: sanitize.Text(req.Message),
	}
	if err := s.validate(opSubmitComment, normalized); err != nil {
		return transport.SubmissionResponse{}, err
	}

	resp, err := s.forward(ctx, opSubmitComment, kindComment, s.cfg.GetCommentPath(), normalized)
	if err != nil {
		return transport.SubmissionResponse{}, err
	}

	s.bus.Publish(ctx, events.CommentSubmitted{
		BaseEvent: events.NewBaseEvent(),
		Reference: resp.Reference,
		Name:      normalized.Name,
		Email:     normalized.Email,
		Message:   normalized.Message,
	})
	return resp, nil
}

func (s *Service) validate(op string, payload interface{}) error {
	err := s.val.Struct(payload)
	if err == nil {
		return nil
	}

	field, ok := platformvalidator.FirstFieldError(err)
	if !ok {
		return apperr.Wrap(apperr.KindValidation, "invalid form", err).WithOp(op)
	}

	message := field.Field + " is required"
	if field.Tag == emailTag {
		message = field.Field + " is invalid"
	}
	return apperr.Validation(message).
		WithOp(op).
		WithDetails(map[string]string{"field": field.Field, "rule": field.Tag})
}

func (s *Service) forward(ctx context.Context, op, kind, path string, payload interface{}) (transport.SubmissionResponse, error) {
	reference := uuid.New()
	body, err := s.client.Do(ctx, apiclient.Request{
		Method:  http.MethodPost,
		Path:    path,
		Body:    payload,
		Headers: map[string]string{"Idempotency-Key": reference.String()},
	})
	if err != nil {
		return transport.SubmissionResponse{}, apperr.Propagate(op, err)
	}

	s.log.WithContext(ctx).Info("form submitted", "kind", kind, "reference", reference)

	resp := transport.SubmissionResponse{Reference: reference, Kind: kind}
	if json.Valid(body) {
		resp.Upstream = json.RawMessage(body)
	}
	return resp, nil
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
