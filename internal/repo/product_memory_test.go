package repo

import (
	"errors"
	"sync"
	"testing"

	"github.com/inventory-catalog/api/internal/models"
)

func TestInMemoryCreate_ConcurrentSameName(t *testing.T) {
	r := NewInMemoryProductRepository()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.Create(models.Product{Name: "Widget", Stock: 1})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicatedValueUnique):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("expected exactly one create to win, got %d", ok)
	}
	if conflicts != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
}

func TestInMemoryUpdate_RecordsHistoryOnlyOnStockChange(t *testing.T) {
	r := NewInMemoryProductRepository()
	h := NewInMemoryHistoryRepository()
	r.SetHistoryRepo(h)

	p, err := r.Create(models.Product{Name: "Widget", Stock: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p.Stock = 3
	if _, err := r.Update(p, "admin"); err != nil {
		t.Fatalf("update: %v", err)
	}
	p.Stock = 3
	if _, err := r.Update(p, "admin"); err != nil {
		t.Fatalf("update: %v", err)
	}

	entries, err := h.GetByProductID(p.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].OldQuantity != 5 || entries[0].NewQuantity != 3 || entries[0].Actor != "admin" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
}

func TestInMemoryUpdate_RenameConflict(t *testing.T) {
	r := NewInMemoryProductRepository()

	a, _ := r.Create(models.Product{Name: "Anvil", Stock: 1})
	if _, err := r.Create(models.Product{Name: "Bolt", Stock: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}

	a.Name = "Bolt"
	if _, err := r.Update(a, "admin"); !errors.Is(err, ErrDuplicatedValueUnique) {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestInMemoryDelete_Idempotent(t *testing.T) {
	r := NewInMemoryProductRepository()
	p, _ := r.Create(models.Product{Name: "Widget", Stock: 1})

	if err := r.Delete(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Delete(p.ID); err != nil {
		t.Errorf("repeat delete must succeed, got %v", err)
	}
}

func TestInMemoryList_SortAndPaginate(t *testing.T) {
	r := NewInMemoryProductRepository()
	for _, p := range []models.Product{
		{Name: "Crowbar", Category: "tools", Stock: 12},
		{Name: "Anvil", Category: "tools", Stock: 3},
		{Name: "Bolt", Category: "hardware", Stock: 90},
	} {
		if _, err := r.Create(p); err != nil {
			t.Fatalf("create %q: %v", p.Name, err)
		}
	}

	opts, _ := NewListOptions(1, 2, "stock", "desc", "")
	got, err := r.List(opts)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Bolt" || got[1].Name != "Crowbar" {
		t.Errorf("unexpected page %+v", got)
	}

	opts, _ = NewListOptions(1, 10, "", "", "tools")
	got, _ = r.List(opts)
	if len(got) != 2 {
		t.Errorf("expected 2 tools, got %d", len(got))
	}
}
