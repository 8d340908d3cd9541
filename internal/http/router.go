package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/inventory-catalog/api/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", handlers.ListProductsHandler)
	r.Get("/products/search", handlers.SearchProductsHandler)
	r.Get("/products/export", handlers.ExportProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/products/{id}/history", handlers.GetProductHistoryHandler)

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware, RateLimitMiddleware)
		pr.Post("/products", handlers.CreateProductHandler)
		pr.Put("/products/{id}", handlers.UpdateProductHandler)
		pr.Delete("/products/{id}", handlers.DeleteProductHandler)
		pr.Post("/products/import", handlers.ImportProductsHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
