package queries

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of the NewList/Search/Filter constructors",
)

type listMode int

const (
	listAll listMode = iota + 1
	listUrgent
	listSearch
	listByStatus
)

// ListOrdersQuery selects one page of order summaries.
type ListOrdersQuery struct {
	mode   listMode
	text   string
	status order.Status
	page   PageRequest
	guard  guard.ConstructorGuard
}

func NewListAllOrdersQuery(page PageRequest) ListOrdersQuery {
	return ListOrdersQuery{mode: listAll, page: page, guard: guard.NewConstructorGuard()}
}

// NewListUrgentOrdersQuery lists live orders due soon.
func NewListUrgentOrdersQuery(page PageRequest) ListOrdersQuery {
	return ListOrdersQuery{mode: listUrgent, page: page, guard: guard.NewConstructorGuard()}
}

// NewSearchOrdersQuery matches text case-insensitively against the order
// reference, the customer name and the destination.
func NewSearchOrdersQuery(text string, page PageRequest) (ListOrdersQuery, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ListOrdersQuery{}, errs.NewValueIsRequiredError("text")
	}
	return ListOrdersQuery{mode: listSearch, text: text, page: page, guard: guard.NewConstructorGuard()}, nil
}

func NewFilterOrdersQuery(status string, page PageRequest) (ListOrdersQuery, error) {
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{mode: listByStatus, status: parsed, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	if err := q.guard.Validate(ErrListOrdersQueryIsNotConstructed); err != nil {
		return err
	}
	if q.page.size == 0 {
		return errs.NewValueIsRequiredError("page")
	}
	return nil
}

func (q ListOrdersQuery) Page() PageRequest {
	return q.page
}

// OrderSummaryResponse is one row of a list page.
type OrderSummaryResponse struct {
	ID                    kernel.UUID
	OrderReference        string
	CustomerName          string
	Destination           string
	Status                order.Status
	TotalOrderedQuantity  int
	TotalApprovedQuantity int
	TotalAmount           decimal.Decimal
	OrderDate             time.Time
	EstimatedDeliveryDate *time.Time
	DeliveryDate          *time.Time
	Urgent                bool
}
