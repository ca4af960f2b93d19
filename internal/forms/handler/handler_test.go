package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront_gateway/internal/forms/service"
	"storefront_gateway/platform/apiclient"
	"storefront_gateway/platform/apperr"
	"storefront_gateway/platform/logger"
	"storefront_gateway/platform/validator"
)

type formsConfig struct{}

func (formsConfig) GetQuotePath() string          { return "/web/cotizacion" }
func (formsConfig) GetCommentPath() string        { return "/web/comentario" }
func (formsConfig) GetPhoneDefaultRegion() string { return "EC" }

type stubDoer struct {
	err error
}

func (d stubDoer) Do(context.Context, apiclient.Request) ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	return []byte(`{"status":"received"}`), nil
}

func newTestEngine(t *testing.T, doer stubDoer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, err := service.New(doer, validator.New(), nil, formsConfig{}, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := New(svc)

	engine := gin.New()
	engine.POST("/forms/quote", h.SubmitQuote)
	engine.POST("/forms/comment", h.SubmitComment)
	return engine
}

func post(engine *gin.Engine, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestSubmitCommentCreated(t *testing.T) {
	w := post(newTestEngine(t, stubDoer{}), "/forms/comment", `{"name":"Luis","email":"luis@example.com","message":"Hola"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Reference string          `json:"reference"`
		Kind      string          `json:"kind"`
		Upstream  json.RawMessage `json:"upstream"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Reference == "" || body.Kind != "comment" || string(body.Upstream) != `{"status":"received"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestSubmitQuoteValidationError(t *testing.T) {
	w := post(newTestEngine(t, stubDoer{}), "/forms/quote", `{"name":"Ana","email":"ana@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "phone is required" || body.Details["field"] != "phone" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestSubmitQuoteMalformedBody(t *testing.T) {
	if w := post(newTestEngine(t, stubDoer{}), "/forms/quote", `{`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitUpstreamFailure(t *testing.T) {
	engine := newTestEngine(t, stubDoer{err: apperr.New(apperr.KindUpstream, "POST /web/comentario: upstream returned 500")})
	w := post(engine, "/forms/comment", `{"name":"Luis","email":"luis@example.com","message":"Hola"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}
