package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/inventory-catalog/api/internal/auth"
	handler "github.com/inventory-catalog/api/internal/http/handlers"
	"github.com/inventory-catalog/api/internal/repo"
)

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	historyRepo *repo.InMemoryHistoryRepository
)

func init() {
	setupTestRepos()

	var err error
	token, err = auth.GenerateToken("admin")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos() {
	productRepo = repo.NewInMemoryProductRepository()
	historyRepo = repo.NewInMemoryHistoryRepository()
	productRepo.SetHistoryRepo(historyRepo)

	handler.SetProductRepo(productRepo)
	handler.SetHistoryRepo(historyRepo)
}

func clearAll() {
	productRepo.Clear()
	historyRepo.Clear()
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func updateProduct(r http.Handler, id int, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/products/%d", id), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deleteProduct(r http.Handler, id int) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("csvFile", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func importCSV(r http.Handler, csvContent string) *httptest.ResponseRecorder {
	buf, contentType := multipartCSV(csvContent, "products.csv")
	req := httptest.NewRequest(http.MethodPost, "/products/import", buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustID(w *httptest.ResponseRecorder) int {
	var resp handler.CreatedResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding created response: %v", err))
	}
	return resp.Id
}
