// Package queries contains the read side of the fulfillment service:
// dashboard metrics, paginated order lists and the detailed order view.
// Reads are never locked and may observe a mutation in flight.
package queries

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"fulfillment/internal/pkg/errs"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps page*size inside int.
	MaxPage = math.MaxInt / MaxPageSize
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// sortColumns maps the public sort keys to sales_orders columns.
func sortColumns() map[string]string {
	return map[string]string{
		"orderDate":             "order_date",
		"estimatedDeliveryDate": "estimated_delivery_date",
		"orderReference":        "order_reference",
		"customerName":          "customer_name",
		"status":                "status",
		"totalAmount":           "total_amount",
	}
}

// PageRequest is a validated, 0-based page selection.
type PageRequest struct {
	page    int
	size    int
	sortBy  string
	sortDir SortDirection
}

// NewPageRequest applies defaults for zero values: size 10, newest
// orderDate first.
func NewPageRequest(page, size int, sortBy, sortDir string) (PageRequest, error) {
	if size == 0 {
		size = DefaultPageSize
	}
	if sortBy == "" {
		sortBy = "orderDate"
	}
	dir := SortDirection(strings.ToLower(strings.TrimSpace(sortDir)))
	if dir == "" {
		dir = SortDesc
	}

	var problems []error
	if page < 0 || page > MaxPage {
		problems = append(problems, errs.NewValueIsOutOfRangeError("page", page, 0, MaxPage))
	}
	if size < 1 || size > MaxPageSize {
		problems = append(problems, errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize))
	}
	if _, ok := sortColumns()[sortBy]; !ok {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("sortBy", fmt.Errorf("%q is not sortable", sortBy)))
	}
	if dir != SortAsc && dir != SortDesc {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("sortDir", fmt.Errorf("%q is not asc or desc", sortDir)))
	}
	if err := errors.Join(problems...); err != nil {
		return PageRequest{}, err
	}
	return PageRequest{page: page, size: size, sortBy: sortBy, sortDir: dir}, nil
}

func (p PageRequest) Page() int              { return p.page }
func (p PageRequest) Size() int              { return p.size }
func (p PageRequest) SortBy() string         { return p.sortBy }
func (p PageRequest) SortDir() SortDirection { return p.sortDir }
func (p PageRequest) offset() int            { return p.page * p.size }
func (p PageRequest) orderClause() string {
	return sortColumns()[p.sortBy] + " " + strings.ToUpper(string(p.sortDir)) + " NULLS LAST, id"
}

// Page is one slice of a sorted result.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	TotalPages    int
	Number        int
	Size          int
}

func newPage[T any](content []T, total int64, request PageRequest) Page[T] {
	pages := int((total + int64(request.size) - 1) / int64(request.size))
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Number:        request.page,
		Size:          request.size,
	}
}
