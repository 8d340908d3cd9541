package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inventory-catalog/api/internal/auth"
	models "github.com/inventory-catalog/api/internal/models"
	repo "github.com/inventory-catalog/api/internal/repo"
)

// ListProductsHandler godoc
// @Summary List products
// @Description Paginated, sorted, optionally category-filtered catalog listing
// @Tags products
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Param sort query string false "Sort field (id|name|unit|category|brand|stock|status)"
// @Param order query string false "Sort order (asc|desc)"
// @Param category query string false "Exact category filter"
// @Success 200 {array} ProductResponse
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := repo.DefaultPage
	if s := q.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = v
	}
	limit := repo.DefaultLimit
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = v
	}

	opts, err := repo.NewListOptions(page, limit, q.Get("sort"), q.Get("order"), q.Get("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	products, err := productRepo.List(opts)
	if err != nil {
		log.Printf("could not list products: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	writeProducts(w, products)
}

// SearchProductsHandler godoc
// @Summary Search products by name
// @Description Case-insensitive substring match on product name
// @Tags products
// @Produce json
// @Param name query string false "Name substring"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products/search [get]
func SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.Search(r.URL.Query().Get("name"))
	if err != nil {
		log.Printf("could not search products: %v", err)
		http.Error(w, "could not search products", http.StatusInternalServerError)
		return
	}

	writeProducts(w, products)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(product))
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog; name must be unique
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} CreatedResult
// @Failure 400 {object} []ProductValidationError
// @Failure 409 {string} string "Duplicate name"
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	created, err := productRepo.Create(toProduct(req, 0))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "product name must be unique", http.StatusConflict)
			return
		}
		log.Printf("could not create product: %v", err)
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, CreatedResult{Id: created.ID})
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Full-record replace; a stock change records a history entry
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} []ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicate name"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	actor := auth.ActorFromContext(r.Context())
	updated, err := productRepo.Update(toProduct(req, id), actor)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			http.Error(w, "product name must be unique", http.StatusConflict)
		default:
			log.Printf("could not update product %d: %v", id, err)
			http.Error(w, "could not update product", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Idempotent; deleting an absent id still succeeds
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if err := productRepo.Delete(id); err != nil {
		log.Printf("could not delete product %d: %v", id, err)
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toProduct(req ProductRequest, id int) models.Product {
	return models.Product{
		ID:       id,
		Name:     req.Name,
		Unit:     req.Unit,
		Category: req.Category,
		Brand:    req.Brand,
		Stock:    req.Stock,
		Status:   req.Status,
		Image:    req.Image,
	}
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:       p.ID,
		Name:     p.Name,
		Unit:     p.Unit,
		Category: p.Category,
		Brand:    p.Brand,
		Stock:    p.Stock,
		Status:   p.Status,
		Image:    p.Image,
	}
}

func writeProducts(w http.ResponseWriter, products []models.Product) {
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
