package order

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Allocation is a validated stock-out request: productID to quantity to ship.
// Zero entries are allowed but at least one entry must be positive.
type Allocation map[string]int

// StockMovement is one inventory change caused by the ledger.
type StockMovement struct {
	ProductID string
	Quantity  int
}

func NewAllocation(quantities map[string]int) (Allocation, error) {
	if len(quantities) == 0 {
		return nil, errs.NewValueIsRequiredError("itemQuantities")
	}

	var problems []error
	allocation := make(Allocation, len(quantities))
	positive := false
	for productID, qty := range quantities {
		key := strings.TrimSpace(productID)
		switch {
		case key == "":
			problems = append(problems, errs.NewValueIsRequiredError("itemQuantities.productId"))
		case qty < 0:
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"itemQuantities."+key, fmt.Errorf("%d is negative", qty)))
		default:
			if _, dup := allocation[key]; dup {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
					"itemQuantities."+key, errors.New("product is listed more than once")))
				continue
			}
			allocation[key] = qty
			positive = positive || qty > 0
		}
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	if !positive {
		return nil, errs.NewValueIsInvalidErrorWithCause("itemQuantities", errors.New("no quantity greater than 0"))
	}
	return allocation, nil
}

// ProductIDs returns the keys in a stable order.
func (a Allocation) ProductIDs() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Total is the sum of all quantities to ship.
func (a Allocation) Total() int {
	total := 0
	for _, qty := range a {
		total += qty
	}
	return total
}

// CheckAllocation validates a against the current ledger without mutating it.
// Every exceeded line is reported, joined into one error.
func (o *SalesOrder) CheckAllocation(a Allocation) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if len(a) == 0 {
		return errs.NewValueIsRequiredError("itemQuantities")
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(o.status.String(), o.status.String(),
			fmt.Errorf("%s orders cannot be stocked out", o.status))
	}

	var missing, exceeded []error
	for _, productID := range a.ProductIDs() {
		qty := a[productID]
		item, ok := o.Item(productID)
		if !ok {
			missing = append(missing, errs.NewObjectNotFoundError("productId", productID))
			continue
		}
		if qty > item.Remaining() {
			exceeded = append(exceeded, errs.NewQuantityExceededError(productID, qty, item.Remaining()))
		}
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}
	return errors.Join(exceeded...)
}

// StockOut ships a in one step: either every line is applied or none is. The
// status is then re-derived from the new totals. The returned movements, in
// item order, are the inventory decrements the caller must perform.
func (o *SalesOrder) StockOut(a Allocation, actor string, now time.Time) ([]StockMovement, error) {
	if err := o.CheckAllocation(a); err != nil {
		return nil, err
	}

	next, err := o.status.ForQuantities(o.TotalApprovedQuantity()+a.Total(), o.TotalOrderedQuantity())
	if err != nil {
		return nil, err
	}

	movements := make([]StockMovement, 0, len(a))
	for _, item := range o.items {
		qty := a[item.ProductID()]
		if qty == 0 {
			continue
		}
		if err := item.approve(qty); err != nil {
			// CheckAllocation already bounded every line.
			return nil, err
		}
		movements = append(movements, StockMovement{ProductID: item.ProductID(), Quantity: qty})
	}

	previous := o.status
	o.status = next
	o.touch(now)
	o.record(EventStockedOut, previous, actor, now)
	return movements, nil
}

// Cancel moves the order to Cancelled and returns the unshipped remainder of
// every line, which goes back to inventory. An already cancelled order
// returns errs.ErrAlreadyCancelled and no movements.
func (o *SalesOrder) Cancel(actor string, now time.Time) ([]StockMovement, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	next, err := o.status.Cancel()
	if err != nil {
		return nil, err
	}

	released := make([]StockMovement, 0, len(o.items))
	for _, item := range o.items {
		if remaining := item.Remaining(); remaining > 0 {
			released = append(released, StockMovement{ProductID: item.ProductID(), Quantity: remaining})
		}
	}

	previous := o.status
	o.status = next
	o.touch(now)
	o.record(EventCancelled, previous, actor, now)
	return released, nil
}
