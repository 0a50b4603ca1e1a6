// Package validation turns raw request parameters into validated, safe
// structured values. It is pure: no I/O, no store access.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error describes a rejected request parameter. Handlers map it straight to
// a 400 response; it never wraps a store or transport failure.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func newErrorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// SortSpec is a sort field that has already been resolved against the
// allow-list, plus a direction. Only values produced by this package may
// reach an ORDER BY clause.
type SortSpec struct {
	Field      string
	Descending bool
}

// OrderClause renders the ORDER BY fragment. Safe by construction: Field is
// always one of the allow-listed column names, never caller text.
func (s SortSpec) OrderClause() string {
	if s.Descending {
		return s.Field + " DESC"
	}
	return s.Field + " ASC"
}

// allowedSortFields are the product columns callers may sort by.
var allowedSortFields = []string{"id", "name", "price", "category", "created_at"}

// sortTypes is the fixed table behind /products/sort/{sort_type}.
var sortTypes = map[string]SortSpec{
	"name":          {Field: "name"},
	"name_desc":     {Field: "name", Descending: true},
	"price":         {Field: "price"},
	"price_desc":    {Field: "price", Descending: true},
	"category":      {Field: "category"},
	"category_desc": {Field: "category", Descending: true},
	"id":            {Field: "id"},
	"id_desc":       {Field: "id", Descending: true},
	"created":       {Field: "created_at"},
	"created_desc":  {Field: "created_at", Descending: true},
}

// ParseSortBy resolves a free-form sort token such as "price" or
// "price_desc". The token is reduced to a bare field name and checked
// against the allow-list; the returned field is the allow-list entry itself,
// the raw token is discarded.
func ParseSortBy(token string) (SortSpec, error) {
	field := strings.ToLower(token)
	descending := strings.HasSuffix(field, "_desc")
	field = strings.TrimSuffix(field, "_desc")
	field = strings.TrimSuffix(field, "_asc")

	for _, allowed := range allowedSortFields {
		if field == allowed {
			return SortSpec{Field: allowed, Descending: descending}, nil
		}
	}
	return SortSpec{}, newErrorf("invalid sort field. Allowed fields: %s",
		strings.Join(allowedSortFields, ", "))
}

// ParseSortType resolves a fixed sort variant from the enumerated table.
func ParseSortType(token string) (SortSpec, error) {
	spec, ok := sortTypes[token]
	if !ok {
		names := make([]string, 0, len(sortTypes))
		for name := range sortTypes {
			names = append(names, name)
		}
		sort.Strings(names)
		return SortSpec{}, newErrorf("invalid sort type. Allowed: %s",
			strings.Join(names, ", "))
	}
	return spec, nil
}

// Pagination bounds. Callers apply the defaults before validation.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Pagination is a validated skip/limit window.
type Pagination struct {
	Skip  int
	Limit int
}

// ParsePagination validates a pagination window. The bounds are enforced
// here regardless of what the transport layer already checked.
func ParsePagination(skip, limit int) (Pagination, error) {
	if skip < 0 {
		return Pagination{}, newErrorf("skip must be greater than or equal to 0")
	}
	if limit < 1 || limit > MaxLimit {
		return Pagination{}, newErrorf("limit must be between 1 and %d", MaxLimit)
	}
	return Pagination{Skip: skip, Limit: limit}, nil
}

// ValidateID checks a product id path parameter. IDs start at 1.
func ValidateID(id int) error {
	if id < 1 {
		return newErrorf("product ID must be greater than 0")
	}
	return nil
}
