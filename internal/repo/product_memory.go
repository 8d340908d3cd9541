package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inventory-catalog/api/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository. The mutex matters: bulk import fans rows out to
// concurrent workers that all call Create.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
	history  *InMemoryHistoryRepository
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// SetHistoryRepo attaches the ledger that Update records stock changes to.
func (r *InMemoryProductRepository) SetHistoryRepo(h *InMemoryHistoryRepository) {
	r.history = h
}

// Create adds a new product, enforcing the unique name constraint the way
// the real store does.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Name == product.Name {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products ordered by id.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// GetByName retrieves a product by its exact name.
func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// List applies the category filter, sorts by the allow-listed field and
// paginates, mirroring the Postgres query shape.
func (r *InMemoryProductRepository) List(opts ListOptions) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Product
	for _, p := range r.products {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, opts.Sort, opts.Order)

	start := opts.Offset()
	if start >= len(filtered) {
		return []models.Product{}, nil
	}
	end := min(start+opts.Limit, len(filtered))
	return filtered[start:end], nil
}

// Search matches name substrings case-insensitively, ordered by id.
func (r *InMemoryProductRepository) Search(name string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(name)
	var matched []models.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

// Update replaces all mutable fields and records a history entry when the
// stored stock differs from the candidate's.
func (r *InMemoryProductRepository) Update(product models.Product, actor string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != product.ID {
			continue
		}
		for _, other := range r.products {
			if other.ID != product.ID && other.Name == product.Name {
				return models.Product{}, ErrDuplicatedValueUnique
			}
		}
		if p.Stock != product.Stock && r.history != nil {
			r.history.Add(models.InventoryHistoryEntry{
				ProductID:   product.ID,
				OldQuantity: p.Stock,
				NewQuantity: product.Stock,
				ChangedAt:   time.Now().UTC(),
				Actor:       actor,
			})
		}
		r.products[i] = product
		return product, nil
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product if present; a missing id is still a success.
func (r *InMemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

func sortProducts(products []models.Product, field, order string) {
	less := func(a, b models.Product) bool { return a.Name < b.Name }
	switch field {
	case "id":
		less = func(a, b models.Product) bool { return a.ID < b.ID }
	case "unit":
		less = func(a, b models.Product) bool { return a.Unit < b.Unit }
	case "category":
		less = func(a, b models.Product) bool { return a.Category < b.Category }
	case "brand":
		less = func(a, b models.Product) bool { return a.Brand < b.Brand }
	case "stock":
		less = func(a, b models.Product) bool { return a.Stock < b.Stock }
	case "status":
		less = func(a, b models.Product) bool { return a.Status < b.Status }
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if order == OrderDesc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return products[i].ID < products[j].ID
	})
}
