package repo

import "errors"

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicatedValueUnique is the store's authoritative signal that an insert
// or rename collided with the unique product name constraint.
var ErrDuplicatedValueUnique = errors.New("duplicated value violates unique constraint")
