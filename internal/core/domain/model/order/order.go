package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSalesOrderIsNotConstructed = errors.New("SalesOrder must be created via NewSalesOrder or RestoreSalesOrder")

// SalesOrder is the aggregate root of the fulfillment workflow. Items are
// owned exclusively by the order and keep their placement order.
type SalesOrder struct {
	id                    kernel.UUID
	reference             string
	customerName          string
	destination           string
	status                Status
	orderDate             time.Time
	estimatedDeliveryDate *time.Time
	deliveryDate          *time.Time
	confirmedBy           string
	lastUpdate            *time.Time
	items                 []*Item
	events                []StatusChanged
	guard                 guard.ConstructorGuard
}

// State carries every persisted field of a SalesOrder.
type State struct {
	ID                    kernel.UUID
	Reference             string
	CustomerName          string
	Destination           string
	Status                Status
	OrderDate             time.Time
	EstimatedDeliveryDate *time.Time
	DeliveryDate          *time.Time
	ConfirmedBy           string
	LastUpdate            *time.Time
	Items                 []*Item
}

// NewSalesOrder places a new order in Pending with nothing approved.
func NewSalesOrder(
	id kernel.UUID,
	reference, customerName, destination string,
	orderDate time.Time,
	estimatedDeliveryDate *time.Time,
	items []*Item,
) (*SalesOrder, error) {
	for _, item := range items {
		if item != nil && item.ApprovedQuantity() != 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("items are invalid",
				fmt.Errorf("product %s already has approved quantity", item.ProductID()))
		}
	}
	return RestoreSalesOrder(State{
		ID:                    id,
		Reference:             reference,
		CustomerName:          customerName,
		Destination:           destination,
		Status:                Pending,
		OrderDate:             orderDate,
		EstimatedDeliveryDate: estimatedDeliveryDate,
		Items:                 items,
	})
}

// RestoreSalesOrder rebuilds an order from persistence and re-checks its invariants.
func RestoreSalesOrder(state State) (*SalesOrder, error) {
	o := &SalesOrder{
		customerName:          strings.TrimSpace(state.CustomerName),
		destination:           strings.TrimSpace(state.Destination),
		orderDate:             state.OrderDate,
		estimatedDeliveryDate: state.EstimatedDeliveryDate,
		deliveryDate:          state.DeliveryDate,
		confirmedBy:           state.ConfirmedBy,
		lastUpdate:            state.LastUpdate,
		guard:                 guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		o.setID(state.ID),
		o.setReference(state.Reference),
		o.setStatus(state.Status),
		o.setItems(state.Items),
	); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *SalesOrder) Validate() error {
	if o == nil {
		return ErrSalesOrderIsNotConstructed
	}
	return o.guard.Validate(ErrSalesOrderIsNotConstructed)
}

func (o *SalesOrder) IsEqual(other *SalesOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *SalesOrder) ID() kernel.UUID {
	return o.id
}

func (o *SalesOrder) Reference() string {
	return o.reference
}

func (o *SalesOrder) CustomerName() string {
	return o.customerName
}

func (o *SalesOrder) Destination() string {
	return o.destination
}

func (o *SalesOrder) Status() Status {
	return o.status
}

func (o *SalesOrder) OrderDate() time.Time {
	return o.orderDate
}

func (o *SalesOrder) EstimatedDeliveryDate() *time.Time {
	return o.estimatedDeliveryDate
}

func (o *SalesOrder) DeliveryDate() *time.Time {
	return o.deliveryDate
}

// ConfirmedBy is the user who last advanced the status through a QR token.
func (o *SalesOrder) ConfirmedBy() string {
	return o.confirmedBy
}

func (o *SalesOrder) LastUpdate() *time.Time {
	return o.lastUpdate
}

// Items returns a copy of the item slice; the items themselves are shared.
func (o *SalesOrder) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// Item finds the line for productID.
func (o *SalesOrder) Item(productID string) (*Item, bool) {
	for _, item := range o.items {
		if item.ProductID() == productID {
			return item, true
		}
	}
	return nil, false
}

func (o *SalesOrder) TotalOrderedQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.Quantity()
	}
	return total
}

func (o *SalesOrder) TotalApprovedQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.ApprovedQuantity()
	}
	return total
}

func (o *SalesOrder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Amount())
	}
	return total
}

// IsUrgent reports a live order due within window of now (overdue included).
func (o *SalesOrder) IsUrgent(now time.Time, window time.Duration) bool {
	if o.status.IsTerminal() || o.status == Delivered || o.estimatedDeliveryDate == nil {
		return false
	}
	return !o.estimatedDeliveryDate.After(now.Add(window))
}

// AdvanceStatus moves the order forward on behalf of actor and stamps who
// confirmed it. Completing an order also sets its delivery date when unset.
func (o *SalesOrder) AdvanceStatus(target Status, actor string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	next, err := o.status.AdvanceTo(target)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = next
	o.confirmedBy = actor
	o.touch(now)
	if next == Completed && o.deliveryDate == nil {
		delivered := now
		o.deliveryDate = &delivered
	}
	o.record(EventStatusAdvanced, previous, actor, now)
	return nil
}

// PullEvents returns the recorded events and clears them.
func (o *SalesOrder) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}

func (o *SalesOrder) touch(now time.Time) {
	o.lastUpdate = &now
}

func (o *SalesOrder) record(eventType EventType, previous Status, actor string, now time.Time) {
	o.events = append(o.events, StatusChanged{
		ID:             kernel.NewUUID(),
		Type:           eventType,
		OrderID:        o.id,
		OrderReference: o.reference,
		Previous:       previous,
		Current:        o.status,
		Actor:          actor,
		OccurredAt:     now,
	})
}

func (o *SalesOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *SalesOrder) setReference(reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errs.NewValueIsRequiredError("orderReference")
	}
	o.reference = reference
	return nil
}

func (o *SalesOrder) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *SalesOrder) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items are invalid",
				fmt.Errorf("product %s appears more than once", item.ProductID()))
		}
		seen[item.ProductID()] = struct{}{}
	}
	o.items = items
	return nil
}
