package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"storefront_gateway/internal/catalog/domain"
	"storefront_gateway/internal/catalog/normalizer"
	"storefront_gateway/platform/apperr"
	"storefront_gateway/platform/logger"
)

// DefaultRelatedLimit caps related-item results when the caller passes no limit.
const DefaultRelatedLimit = 3

// Fetcher issues GET requests against the upstream catalog service.
type Fetcher interface {
	GetJSON(ctx context.Context, path string) ([]byte, error)
}

// Service provides read access to a company's catalog. Every call fetches
// and normalizes the whole catalog again; nothing is cached.
type Service struct {
	client     Fetcher
	normalizer *normalizer.Normalizer
	log        *logger.Logger
}

// New creates a new catalog service.
func New(client Fetcher, norm *normalizer.Normalizer, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if norm == nil {
		norm = normalizer.New(log)
	}
	return &Service{client: client, normalizer: norm, log: log}
}

// CatalogPath returns the upstream path for a company's catalog.
func CatalogPath(companyName string) string {
	return "/web/productos/" + url.PathEscape(companyName)
}

// FetchAll retrieves and normalizes the full catalog of a company.
func (s *Service) FetchAll(ctx context.Context, companyName string) ([]domain.Product, error) {
	company := strings.TrimSpace(companyName)
	if company == "" {
		return nil, apperr.Validation("company name is required")
	}

	body, err := s.client.GetJSON(ctx, CatalogPath(company))
	if err != nil {
		return nil, apperr.Propagate(fmt.Sprintf("fetch catalog for %s", company), err)
	}

	products := s.normalizer.Decode(body)
	s.log.WithContext(ctx).Debug("catalog fetched", "company", company, "count", len(products))
	return products, nil
}

// FetchByID looks a product up by its stable identifier.
func (s *Service) FetchByID(ctx context.Context, id string, companyName string) (domain.Product, error) {
	products, err := s.FetchAll(ctx, companyName)
	if err != nil {
		return domain.Product{}, err
	}

	for _, product := range products {
		if product.ID() == id {
			return product, nil
		}
	}
	return domain.Product{}, apperr.NotFound(fmt.Sprintf("product %s not found", id))
}

// FetchByPosition returns the product at index in the freshly fetched catalog.
func (s *Service) FetchByPosition(ctx context.Context, index int, companyName string) (domain.Product, error) {
	products, err := s.FetchAll(ctx, companyName)
	if err != nil {
		return domain.Product{}, err
	}

	if index < 0 || index >= len(products) {
		return domain.Product{}, apperr.NotFound(fmt.Sprintf("no product at position %d", index))
	}
	return products[index], nil
}

// FetchByCategory keeps the products whose business line equals the
// category's constant. CategoryUnknown returns the unfiltered catalog.
func (s *Service) FetchByCategory(ctx context.Context, category domain.Category, companyName string) ([]domain.Product, error) {
	products, err := s.FetchAll(ctx, companyName)
	if err != nil {
		return nil, err
	}
	if category == domain.CategoryUnknown {
		return products, nil
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if category.Matches(product) {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

// FetchByCategoryName parses a user-facing category name first.
// Unrecognized names return the unfiltered catalog.
func (s *Service) FetchByCategoryName(ctx context.Context, name string, companyName string) ([]domain.Product, error) {
	return s.FetchByCategory(ctx, domain.ParseCategory(name), companyName)
}

// FetchRelated returns up to limit products from the source's category,
// narrowed to those sharing its similarity field when the source has one.
// Failures are logged and yield an empty list.
func (s *Service) FetchRelated(ctx context.Context, source domain.Product, companyName string, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	category := source.Category()
	candidates, err := s.FetchByCategory(ctx, category, companyName)
	if err != nil {
		s.log.WithContext(ctx).Warn("related products unavailable", "product", source.ID(), "error", err)
		return []domain.Product{}
	}

	field := category.SimilarityField()
	narrow := field != "" && source.HasField(field)
	want := source.StringField(field)

	related := make([]domain.Product, 0, limit)
	for _, candidate := range candidates {
		if candidate.ID() == source.ID() {
			continue
		}
		if narrow && candidate.StringField(field) != want {
			continue
		}
		related = append(related, candidate)
		if len(related) == limit {
			break
		}
	}
	return related
}
