package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	models "github.com/inventory-catalog/api/internal/models"
	repo "github.com/inventory-catalog/api/internal/repo"
)

// exportHeader is the fixed column contract shared by import and export.
var exportHeader = []string{"name", "unit", "category", "brand", "stock", "status", "image"}

type csvRow struct {
	Name     string
	Unit     string
	Category string
	Brand    string
	Stock    string
	Status   string
	Image    string
}

// parseCSV reads product rows, resolving columns from the header so the
// file's column order does not matter. Only "name" is mandatory.
func parseCSV(f io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("CSV header must contain a name column")
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:     field(record, "name"),
			Unit:     field(record, "unit"),
			Category: field(record, "category"),
			Brand:    field(record, "brand"),
			Stock:    field(record, "stock"),
			Status:   field(record, "status"),
			Image:    field(record, "image"),
		})
	}
	return rows, nil
}

// importRow attempts one row and reports whether it was added. Rows are
// independent: any failure just lands in the skipped tally. The store's
// unique-violation error, not the pre-read, is the authoritative
// duplicate signal.
func importRow(row csvRow) bool {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return false
	}
	stock := 0
	if s := strings.TrimSpace(row.Stock); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return false
		}
		stock = v
	}

	if _, err := productRepo.GetByName(name); err == nil {
		return false
	}

	_, err := productRepo.Create(models.Product{
		Name:     name,
		Unit:     row.Unit,
		Category: row.Category,
		Brand:    row.Brand,
		Stock:    stock,
		Status:   row.Status,
		Image:    row.Image,
	})
	if err != nil {
		if !errors.Is(err, repo.ErrDuplicatedValueUnique) {
			log.Printf("import: could not create %q: %v", name, err)
		}
		return false
	}
	return true
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Inserts rows whose name is new; rows with existing names are skipped
// @Tags transfer
// @Accept multipart/form-data
// @Produce json
// @Param csvFile formData file true "CSV file"
// @Success 200 {object} ImportResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("csvFile")
	if err != nil {
		http.Error(w, "missing csvFile", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Spool the upload to disk and remove the backing file on every path,
	// success or failure.
	tmpPath := filepath.Join(os.TempDir(), "import-"+uuid.NewString()+".csv")
	tmp, err := os.Create(tmpPath)
	if err != nil {
		http.Error(w, "could not buffer upload", http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmpPath)
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		http.Error(w, "could not buffer upload", http.StatusInternalServerError)
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		http.Error(w, "could not buffer upload", http.StatusInternalServerError)
		return
	}

	rows, err := parseCSV(tmp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Rows fan out to a bounded worker group; the tallies are atomics read
	// once after Wait, never shared bare counters.
	var added, skipped atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(importWorkers)
	for _, row := range rows {
		g.Go(func() error {
			if importRow(row) {
				added.Add(1)
			} else {
				skipped.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := writeJSON(w, http.StatusOK, ImportResult{
		Added:   int(added.Load()),
		Skipped: int(skipped.Load()),
	}); err != nil {
		log.Printf("failed to write import result: %v", err)
	}
}

// ExportProductsHandler godoc
// @Summary Export the catalog as CSV
// @Description Header name,unit,category,brand,stock,status,image; RFC 4180 quoting
// @Tags transfer
// @Produce text/csv
// @Success 200 {file} file
// @Failure 500 {string} string "Internal error"
// @Router /products/export [get]
func ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		log.Printf("could not export products: %v", err)
		http.Error(w, "could not export products", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)

	csvWriter := csv.NewWriter(w)
	_ = csvWriter.Write(exportHeader)
	for _, p := range products {
		_ = csvWriter.Write([]string{
			p.Name,
			p.Unit,
			p.Category,
			p.Brand,
			strconv.Itoa(p.Stock),
			p.Status,
			p.Image,
		})
	}
	csvWriter.Flush()
}
