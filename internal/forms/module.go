// Package forms provides the contact forms bounded context module.
package forms

import (
	"storefront_gateway/internal/forms/handler"
	"storefront_gateway/internal/forms/service"
	apphttp "storefront_gateway/internal/http"
	"storefront_gateway/platform/config"
	"storefront_gateway/platform/logger"
	"storefront_gateway/platform/validator"
)

// Module is the forms bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the forms module.
// Accepted submissions are published on bus.
func NewModule(client service.Doer, val *validator.Validator, bus service.Publisher, cfg config.FormsConfig, log *logger.Logger) (*Module, error) {
	svc, err := service.New(client, val, bus, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "forms"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts form routes behind the form rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/forms")
	if ctx.FormsRateLimiter != nil {
		group.Use(ctx.FormsRateLimiter.RateLimit())
	}
	group.POST("/quote", m.handler.SubmitQuote)
	group.POST("/comment", m.handler.SubmitComment)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
