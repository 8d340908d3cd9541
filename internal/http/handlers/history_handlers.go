package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// GetProductHistoryHandler godoc
// @Summary Stock change history for a product
// @Description Append-only ledger entries, most recent first. The ledger
// @Description outlives the product, so a deleted id can still return entries.
// @Tags history
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} HistoryEntryResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/history [get]
func GetProductHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	entries, err := historyRepo.GetByProductID(id)
	if err != nil {
		log.Printf("could not retrieve history for product %d: %v", id, err)
		http.Error(w, "could not retrieve history", http.StatusInternalServerError)
		return
	}

	response := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		response[i] = HistoryEntryResponse{
			Id:          e.ID,
			ProductId:   e.ProductID,
			OldQuantity: e.OldQuantity,
			NewQuantity: e.NewQuantity,
			ChangedAt:   e.ChangedAt.Format(time.RFC3339),
			Actor:       e.Actor,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
