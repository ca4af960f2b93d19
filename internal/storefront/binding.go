// Package storefront binds catalog reads to the state a product page renders:
// loading flag, last error, current product list, selection and related items.
package storefront

import (
	"context"
	"sync"

	"storefront_gateway/internal/catalog/domain"
	"storefront_gateway/internal/catalog/service"
	"storefront_gateway/platform/logger"
)

// Accessor is the subset of the catalog service the binding drives.
type Accessor interface {
	FetchAll(ctx context.Context, companyName string) ([]domain.Product, error)
	FetchByCategoryName(ctx context.Context, name string, companyName string) ([]domain.Product, error)
	FetchByID(ctx context.Context, id string, companyName string) (domain.Product, error)
	FetchByPosition(ctx context.Context, index int, companyName string) (domain.Product, error)
	FetchRelated(ctx context.Context, source domain.Product, companyName string, limit int) []domain.Product
}

// View is a consistent snapshot of the binding state.
type View struct {
	Items    []domain.Product `json:"items"`
	Total    int              `json:"total"`
	Loading  bool             `json:"loading"`
	Error    string           `json:"error,omitempty"`
	Selected *domain.Product  `json:"selected,omitempty"`
	Related  []domain.Product `json:"related"`
}

// State holds what the page currently shows.
type State struct {
	mu       sync.RWMutex
	loading  bool
	err      string
	products []domain.Product
	selected *domain.Product
	related  []domain.Product
	criteria service.Criteria
}

func (s *State) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *State) failProducts(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err.Error()
	s.products = []domain.Product{}
}

func (s *State) setProducts(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.products = products
}

func (s *State) failSelected(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err.Error()
	s.selected = nil
	s.related = []domain.Product{}
}

func (s *State) setSelected(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.selected = &product
	s.related = []domain.Product{}
}

// Binding exposes catalog operations to the presentation layer for one company.
type Binding struct {
	accessor Accessor
	company  string
	log      *logger.Logger
	state    State
}

// NewBinding creates a binding with empty state.
func NewBinding(accessor Accessor, companyName string, log *logger.Logger) *Binding {
	if log == nil {
		log = logger.Nop()
	}
	b := &Binding{accessor: accessor, company: companyName, log: log}
	b.state.products = []domain.Product{}
	b.state.related = []domain.Product{}
	return b
}

// LoadAll replaces the product list with the full catalog.
func (b *Binding) LoadAll(ctx context.Context) error {
	b.state.begin()
	products, err := b.accessor.FetchAll(ctx, b.company)
	if err != nil {
		b.state.failProducts(err)
		return err
	}
	b.state.setProducts(products)
	return nil
}

// LoadCategory replaces the product list with one category.
// Unrecognized names load the whole catalog.
func (b *Binding) LoadCategory(ctx context.Context, name string) error {
	b.state.begin()
	products, err := b.accessor.FetchByCategoryName(ctx, name, b.company)
	if err != nil {
		b.state.failProducts(err)
		return err
	}
	b.state.setProducts(products)
	return nil
}

// LoadProduct selects the product with the given identifier.
func (b *Binding) LoadProduct(ctx context.Context, id string) error {
	b.state.begin()
	product, err := b.accessor.FetchByID(ctx, id, b.company)
	if err != nil {
		b.state.failSelected(err)
		return err
	}
	b.state.setSelected(product)
	return nil
}

// LoadProductAt selects the product at a catalog position.
func (b *Binding) LoadProductAt(ctx context.Context, index int) error {
	b.state.begin()
	product, err := b.accessor.FetchByPosition(ctx, index, b.company)
	if err != nil {
		b.state.failSelected(err)
		return err
	}
	b.state.setSelected(product)
	return nil
}

// LoadRelated fills the related list for the selected product. Without a
// selection it leaves the list empty.
func (b *Binding) LoadRelated(ctx context.Context, limit int) {
	b.state.mu.RLock()
	selected := b.state.selected
	b.state.mu.RUnlock()
	if selected == nil {
		return
	}

	related := b.accessor.FetchRelated(ctx, *selected, b.company, limit)

	b.state.mu.Lock()
	b.state.related = related
	b.state.mu.Unlock()
}

// ApplyFilter narrows the visible items without refetching.
func (b *Binding) ApplyFilter(criteria service.Criteria) {
	b.state.mu.Lock()
	b.state.criteria = criteria
	b.state.mu.Unlock()
}

// View returns the current state with the filter applied to the product list.
func (b *Binding) View() View {
	b.state.mu.RLock()
	defer b.state.mu.RUnlock()

	items := service.Filter(b.state.products, b.state.criteria)
	view := View{
		Items:   items,
		Total:   len(items),
		Loading: b.state.loading,
		Error:   b.state.err,
		Related: b.state.related,
	}
	if b.state.selected != nil {
		selected := *b.state.selected
		view.Selected = &selected
	}
	return view
}

// Brands lists the distinct brands of the loaded products, ignoring the filter.
func (b *Binding) Brands() []string {
	b.state.mu.RLock()
	defer b.state.mu.RUnlock()
	return service.Brands(b.state.products)
}
