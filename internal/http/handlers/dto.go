package handlers

type ProductRequest struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
	Image    string `json:"image"`
}

type ProductResponse struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
	Image    string `json:"image"`
}

type CreatedResult struct {
	Id int `json:"id"`
}

type HistoryEntryResponse struct {
	Id          int    `json:"id"`
	ProductId   int    `json:"product_id"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
	ChangedAt   string `json:"changed_at"`
	Actor       string `json:"actor"`
}

type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}
