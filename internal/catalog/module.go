// Package catalog provides the catalog bounded context module.
package catalog

import (
	"storefront_gateway/internal/catalog/handler"
	"storefront_gateway/internal/catalog/normalizer"
	"storefront_gateway/internal/catalog/service"
	apphttp "storefront_gateway/internal/http"
	"storefront_gateway/platform/config"
	"storefront_gateway/platform/logger"
	"storefront_gateway/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module.
func NewModule(client service.Fetcher, val *validator.Validator, cfg config.CatalogAPIConfig, log *logger.Logger) *Module {
	svc := service.New(client, normalizer.New(log), log)
	h := handler.New(svc, cfg.GetCompanyName(), val, log)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/catalog/products", m.handler.ListProducts)
	ctx.V1.GET("/catalog/products/position/:index", m.handler.GetProductByPosition)
	ctx.V1.GET("/catalog/products/:id", m.handler.GetProductByID)
	ctx.V1.GET("/catalog/products/:id/related", m.handler.ListRelatedProducts)
	ctx.V1.GET("/catalog/brands", m.handler.ListBrands)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
