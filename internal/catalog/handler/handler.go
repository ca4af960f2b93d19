package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_gateway/internal/catalog/service"
	"storefront_gateway/internal/catalog/transport"
	"storefront_gateway/internal/storefront"
	"storefront_gateway/platform/httpkit"
	"storefront_gateway/platform/logger"
	"storefront_gateway/platform/validator"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	accessor storefront.Accessor
	company  string
	val      *validator.Validator
	log      *logger.Logger
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidPosition  = "invalid catalog position"
)

// New creates a new catalog handler serving the catalog of company.
func New(accessor storefront.Accessor, company string, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{accessor: accessor, company: company, val: val, log: log}
}

func (h *Handler) binding() *storefront.Binding {
	return storefront.NewBinding(h.accessor, h.company, h.log)
}

func (h *Handler) requestContext(c *gin.Context) context.Context {
	return context.WithValue(c.Request.Context(), logger.CompanyKey, h.company)
}

// ListProducts lists products, optionally by category and filtered.
// GET /api/v1/catalog/products
func (h *Handler) ListProducts(c *gin.Context) {
	var req transport.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	b := h.binding()
	err := b.LoadCategory(h.requestContext(c), req.Category)
	b.ApplyFilter(service.Criteria{
		Search:        req.Search,
		Brand:         req.Brand,
		WheelDiameter: req.Rin,
		ChemicalClass: req.Class,
		ToolGroup:     req.Group,
	})

	view := b.View()
	resp := transport.ProductListResponse{Items: view.Items, Total: view.Total, Error: view.Error}
	if err != nil {
		_ = c.Error(err)
		httpkit.JSON(c, httpkit.Status(err), resp)
		return
	}
	httpkit.OK(c, resp)
}

// GetProductByID retrieves a product by its identifier, with its related
// items when ?related=true.
// GET /api/v1/catalog/products/:id
func (h *Handler) GetProductByID(c *gin.Context) {
	var req transport.ProductRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	ctx := h.requestContext(c)
	b := h.binding()
	if httpkit.HandleError(c, b.LoadProduct(ctx, c.Param("id"))) {
		return
	}
	if req.Related {
		b.LoadRelated(ctx, 0)
	}

	view := b.View()
	httpkit.OK(c, transport.ProductResponse{Product: *view.Selected, Related: view.Related})
}

// GetProductByPosition retrieves the product at a catalog position.
// GET /api/v1/catalog/products/position/:index
func (h *Handler) GetProductByPosition(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPosition, nil)
		return
	}

	b := h.binding()
	if httpkit.HandleError(c, b.LoadProductAt(h.requestContext(c), index)) {
		return
	}
	httpkit.OK(c, transport.ProductResponse{Product: *b.View().Selected})
}

// ListRelatedProducts retrieves products similar to the given one.
// GET /api/v1/catalog/products/:id/related
func (h *Handler) ListRelatedProducts(c *gin.Context) {
	var req transport.RelatedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	ctx := h.requestContext(c)
	b := h.binding()
	if httpkit.HandleError(c, b.LoadProduct(ctx, c.Param("id"))) {
		return
	}
	b.LoadRelated(ctx, req.Limit)

	view := b.View()
	httpkit.OK(c, transport.ProductListResponse{Items: view.Related, Total: len(view.Related)})
}

// ListBrands lists the distinct brands, optionally within a category.
// GET /api/v1/catalog/brands
func (h *Handler) ListBrands(c *gin.Context) {
	var req transport.BrandsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	b := h.binding()
	if httpkit.HandleError(c, b.LoadCategory(h.requestContext(c), req.Category)) {
		return
	}
	brands := b.Brands()
	httpkit.OK(c, transport.BrandsResponse{Brands: brands, Total: len(brands)})
}
