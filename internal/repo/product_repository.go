package repo

import "github.com/inventory-catalog/api/internal/models"

// ProductRepository defines the interface for catalog data operations.
//
// Update performs a full-record replace and, when the stored stock differs
// from the candidate's, records an inventory history entry attributed to
// actor. Both writes land in the same atomic unit against the store.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	List(opts ListOptions) ([]models.Product, error)
	Search(name string) ([]models.Product, error)
	Update(product models.Product, actor string) (models.Product, error)
	Delete(id int) error
}
