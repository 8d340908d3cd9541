package repo

import (
	"fmt"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	DefaultSort  = "name"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// sortColumns is the allow-list of product fields a caller may sort by.
// Anything outside this map is rejected before it gets near a query.
var sortColumns = map[string]string{
	"id":       "id",
	"name":     "name",
	"unit":     "unit",
	"category": "category",
	"brand":    "brand",
	"stock":    "stock",
	"status":   "status",
}

// ListOptions describes a paginated, sorted, optionally category-filtered
// read over the catalog. Build values through NewListOptions so that Sort
// and Order are always validated.
type ListOptions struct {
	Page     int
	Limit    int
	Sort     string
	Order    string
	Category string
}

func NewListOptions(page, limit int, sort, order, category string) (ListOptions, error) {
	if page < 1 {
		return ListOptions{}, fmt.Errorf("page must be greater than zero")
	}
	if limit < 1 {
		return ListOptions{}, fmt.Errorf("limit must be greater than zero")
	}

	if sort == "" {
		sort = DefaultSort
	}
	if _, ok := sortColumns[sort]; !ok {
		return ListOptions{}, fmt.Errorf("cannot sort by %q", sort)
	}

	order = strings.ToLower(order)
	if order == "" {
		order = OrderAsc
	}
	if order != OrderAsc && order != OrderDesc {
		return ListOptions{}, fmt.Errorf("order must be %q or %q", OrderAsc, OrderDesc)
	}

	return ListOptions{
		Page:     page,
		Limit:    limit,
		Sort:     sort,
		Order:    order,
		Category: category,
	}, nil
}

func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}
