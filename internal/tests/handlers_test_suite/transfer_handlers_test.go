package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/inventory-catalog/api/internal/http"
	handler "github.com/inventory-catalog/api/internal/http/handlers"
)

func decodeImportResult(t *testing.T, w *httptest.ResponseRecorder) handler.ImportResult {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ImportResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func TestImportProducts_AddsNewRows(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	csv := "name,unit,category,brand,stock,status,image\n" +
		"Anvil,pcs,tools,Acme,3,active,anvil.png\n" +
		"Bolt,box,hardware,Acme,90,active,\n"

	resp := decodeImportResult(t, importCSV(r, csv))
	if resp.Added != 2 || resp.Skipped != 0 {
		t.Fatalf("expected added=2 skipped=0, got %+v", resp)
	}

	w := getJSON(r, "/products/search?name=anvil")
	products := decodeProducts(t, w)
	if len(products) != 1 || products[0].Stock != 3 || products[0].Category != "tools" {
		t.Errorf("imported product fields wrong: %+v", products)
	}
}

func TestImportProducts_Idempotent(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	csv := "name,unit,category,brand,stock,status,image\n" +
		"Anvil,pcs,tools,Acme,3,active,\n" +
		"Bolt,box,hardware,Acme,90,active,\n" +
		"Crowbar,pcs,tools,Zenith,12,active,\n"

	first := decodeImportResult(t, importCSV(r, csv))
	if first.Added != 3 || first.Skipped != 0 {
		t.Fatalf("first import: expected added=3 skipped=0, got %+v", first)
	}

	second := decodeImportResult(t, importCSV(r, csv))
	if second.Added != 0 || second.Skipped != 3 {
		t.Fatalf("second import: expected added=0 skipped=3, got %+v", second)
	}
}

func TestImportProducts_BadRowsDoNotAbortBatch(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	csv := "name,unit,category,brand,stock,status,image\n" +
		",pcs,tools,Acme,3,active,\n" + // missing name
		"Bolt,box,hardware,Acme,-4,active,\n" + // negative stock
		"Crowbar,pcs,tools,Zenith,12,active,\n"

	resp := decodeImportResult(t, importCSV(r, csv))
	if resp.Added != 1 || resp.Skipped != 2 {
		t.Fatalf("expected added=1 skipped=2, got %+v", resp)
	}
}

func TestImportProducts_HeaderOrderIndependent(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	csv := "stock,name,category\n7,Drill,tools\n"
	resp := decodeImportResult(t, importCSV(r, csv))
	if resp.Added != 1 {
		t.Fatalf("expected added=1, got %+v", resp)
	}

	products := decodeProducts(t, getJSON(r, "/products/search?name=Drill"))
	if len(products) != 1 || products[0].Stock != 7 {
		t.Errorf("expected Drill with stock 7, got %+v", products)
	}
}

func TestImportProducts_MissingFile(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodPost, "/products/import", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestImportProducts_InvalidHeader(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := importCSV(r, "unit,category\npcs,tools\n")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for header without name column, got %d", w.Code)
	}
}

func TestExportProducts_HeaderAndContent(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Name: "Anvil", Unit: "pcs", Category: "tools", Brand: "Acme", Stock: 3, Status: "active", Image: "anvil.png"})

	w := getJSON(r, "/products/export")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("expected attachment disposition, got %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if lines[0] != "name,unit,category,brand,stock,status,image" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) != 2 || lines[1] != "Anvil,pcs,tools,Acme,3,active,anvil.png" {
		t.Errorf("unexpected rows %q", lines[1:])
	}
}

func TestExportProducts_QuotesEmbeddedSeparators(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Name: "Nails, box of 100", Category: "hardware", Stock: 40})

	w := getJSON(r, "/products/export")
	if !strings.Contains(w.Body.String(), `"Nails, box of 100"`) {
		t.Errorf("embedded comma not quoted: %q", w.Body.String())
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	seed := []handler.ProductRequest{
		{Name: "Anvil", Unit: "pcs", Category: "tools", Brand: "Acme", Stock: 3, Status: "active", Image: "anvil.png"},
		{Name: "Nails, box of 100", Unit: "box", Category: "hardware", Brand: "Acme", Stock: 40, Status: "active"},
		{Name: "Crowbar", Unit: "pcs", Category: "tools", Brand: "Zenith", Stock: 12, Status: "retired"},
	}
	for _, p := range seed {
		if w := createProduct(r, p); w.Code != http.StatusCreated {
			t.Fatalf("seeding %q failed with %d", p.Name, w.Code)
		}
	}

	exported := getJSON(r, "/products/export").Body.String()

	clearAll()

	resp := decodeImportResult(t, importCSV(r, exported))
	if resp.Added != len(seed) || resp.Skipped != 0 {
		t.Fatalf("round-trip import: expected added=%d skipped=0, got %+v", len(seed), resp)
	}

	for _, p := range seed {
		products := decodeProducts(t, getJSON(r, "/products/search?name="+strings.ReplaceAll(p.Name, " ", "+")))
		found := false
		for _, got := range products {
			if got.Name == p.Name {
				found = true
				if got.Unit != p.Unit || got.Category != p.Category || got.Brand != p.Brand ||
					got.Stock != p.Stock || got.Status != p.Status || got.Image != p.Image {
					t.Errorf("round-trip mismatch for %q: %+v", p.Name, got)
				}
			}
		}
		if !found {
			t.Errorf("product %q missing after round-trip", p.Name)
		}
	}
}
