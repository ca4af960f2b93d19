package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront_gateway/internal/events"
	"storefront_gateway/internal/forms/transport"
	"storefront_gateway/platform/apiclient"
	"storefront_gateway/platform/apperr"
	"storefront_gateway/platform/logger"
	"storefront_gateway/platform/validator"
)

type testFormsConfig struct{}

func (testFormsConfig) GetQuotePath() string          { return "/web/cotizacion" }
func (testFormsConfig) GetCommentPath() string        { return "/web/comentario" }
func (testFormsConfig) GetPhoneDefaultRegion() string { return "EC" }

type recordingDoer struct {
	requests []apiclient.Request
	response string
	err      error
}

func (d *recordingDoer) Do(_ context.Context, r apiclient.Request) ([]byte, error) {
	d.requests = append(d.requests, r)
	if d.err != nil {
		return nil, d.err
	}
	return []byte(d.response), nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func newTestService(t *testing.T, doer *recordingDoer, bus Publisher) *Service {
	t.Helper()
	svc, err := New(doer, validator.New(), bus, testFormsConfig{}, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func validQuote() transport.QuoteRequest {
	return transport.QuoteRequest{
		Name:    "  Ana   María ",
		Email:   " Ana.Maria@Example.COM ",
		Phone:   "099 123 4567",
		City:    "Quito",
		Product: "Tire A",
		Message: "Necesito <b>cuatro</b> llantas",
	}
}

func TestSubmitQuoteNormalizesAndForwards(t *testing.T) {
	doer := &recordingDoer{response: `{"ok":true}`}
	bus := &recordingBus{}
	svc := newTestService(t, doer, bus)

	resp, err := svc.SubmitQuote(context.Background(), validQuote())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected one upstream request, got %d", len(doer.requests))
	}

	req := doer.requests[0]
	if req.Method != "POST" || req.Path != "/web/cotizacion" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.Headers["Idempotency-Key"] != resp.Reference.String() {
		t.Fatalf("expected reference to be sent as idempotency key")
	}

	body, ok := req.Body.(transport.QuoteRequest)
	if !ok {
		t.Fatalf("unexpected body type %T", req.Body)
	}
	if body.Name != "Ana María" {
		t.Fatalf("expected whitespace collapsed, got %q", body.Name)
	}
	if body.Email != "ana.maria@example.com" {
		t.Fatalf("expected lowercased email, got %q", body.Email)
	}
	if body.Phone != "+593991234567" {
		t.Fatalf("expected E.164 phone, got %q", body.Phone)
	}
	if body.Message != "Necesito cuatro llantas" {
		t.Fatalf("expected HTML stripped from message, got %q", body.Message)
	}

	if string(resp.Upstream) != `{"ok":true}` || resp.Kind != "quote" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.published))
	}
	event, ok := bus.published[0].(events.QuoteSubmitted)
	if !ok || event.Reference != resp.Reference || event.Phone != "+593991234567" {
		t.Fatalf("unexpected event %+v", bus.published[0])
	}
}

func TestSubmitQuoteReportsFirstMissingField(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*transport.QuoteRequest)
	}{
		{"name", func(r *transport.QuoteRequest) { r.Name = "   " }},
		{"email", func(r *transport.QuoteRequest) { r.Email = "" }},
		{"phone", func(r *transport.QuoteRequest) { r.Phone = "\t" }},
		{"city", func(r *transport.QuoteRequest) { r.City = "" }},
		{"product", func(r *transport.QuoteRequest) { r.Product = " " }},
		{"message", func(r *transport.QuoteRequest) { r.Message = "<p> </p>" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			doer := &recordingDoer{}
			req := validQuote()
			tc.mutate(&req)

			_, err := newTestService(t, doer, nil).SubmitQuote(context.Background(), req)
			assertFieldError(t, err, tc.field, tc.field+" is required")
			if len(doer.requests) != 0 {
				t.Fatalf("expected nothing forwarded on validation failure")
			}
		})
	}
}

func TestSubmitRejectsMalformedEmail(t *testing.T) {
	for _, address := range []string{"foo@bar", "foobar.com", "foo bar@baz.com", "@example.com"} {
		req := validQuote()
		req.Email = address
		_, err := newTestService(t, &recordingDoer{}, nil).SubmitQuote(context.Background(), req)
		assertFieldError(t, err, "email", "email is invalid")

		comment := transport.CommentRequest{Name: "Luis", Email: address, Message: "Hola"}
		_, err = newTestService(t, &recordingDoer{}, nil).SubmitComment(context.Background(), comment)
		assertFieldError(t, err, "email", "email is invalid")
	}
}

func TestSubmitCommentForwards(t *testing.T) {
	doer := &recordingDoer{response: `not json`}
	bus := &recordingBus{}

	resp, err := newTestService(t, doer, bus).SubmitComment(context.Background(), transport.CommentRequest{
		Name:    " Luis ",
		Email:   "LUIS@example.com",
		Message: " Excelente   servicio ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doer.requests[0].Path != "/web/comentario" {
		t.Fatalf("unexpected path %s", doer.requests[0].Path)
	}
	body := doer.requests[0].Body.(transport.CommentRequest)
	if body.Name != "Luis" || body.Email != "luis@example.com" || body.Message != "Excelente servicio" {
		t.Fatalf("unexpected normalized body %+v", body)
	}
	if resp.Upstream != nil {
		t.Fatalf("expected non-JSON upstream body to be dropped")
	}
	if len(bus.published) != 1 || bus.published[0].EventName() != "forms.comment.submitted" {
		t.Fatalf("expected a comment event, got %+v", bus.published)
	}
}

func TestSubmitCommentMissingMessage(t *testing.T) {
	_, err := newTestService(t, &recordingDoer{}, nil).SubmitComment(context.Background(), transport.CommentRequest{
		Name:  "Luis",
		Email: "luis@example.com",
	})
	assertFieldError(t, err, "message", "message is required")
}

func TestTransportFailureIsWrapped(t *testing.T) {
	doer := &recordingDoer{err: apperr.New(apperr.KindTimeout, "POST /web/cotizacion: request timed out after 10s")}
	bus := &recordingBus{}

	_, err := newTestService(t, doer, bus).SubmitQuote(context.Background(), validQuote())
	if !apperr.Is(err, apperr.KindTimeout) {
		t.Fatalf("expected timeout kind, got %v", err)
	}
	if err.Error() != "submit quote: POST /web/cotizacion: request timed out after 10s" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if len(bus.published) != 0 {
		t.Fatalf("expected no event for a failed submission")
	}
}

func TestFailedMailDoesNotFailSubmission(t *testing.T) {
	bus := events.NewInMemoryBus(logger.Nop())
	bus.Subscribe(events.QuoteSubmitted{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		return errors.New("smtp down")
	}))

	if _, err := newTestService(t, &recordingDoer{response: `{}`}, bus).SubmitQuote(context.Background(), validQuote()); err != nil {
		t.Fatalf("expected submission to succeed, got %v", err)
	}
	if err := bus.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}
}

func assertFieldError(t *testing.T, err error, field, message string) {
	t.Helper()
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if appErr.Message != message {
		t.Fatalf("expected message %q, got %q", message, appErr.Message)
	}
	details, _ := json.Marshal(appErr.Details)
	var decoded map[string]string
	_ = json.Unmarshal(details, &decoded)
	if decoded["field"] != field {
		t.Fatalf("expected field %q in details, got %s", field, details)
	}
}
