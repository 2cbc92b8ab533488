package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the fulfillment state of a SalesOrder.
//
// Forward progress follows the declaration order:
//
//	Pending -> PartiallyApproved -> Approved -> DeliveryInProcess
//	        -> PartiallyDelivered -> Delivered -> Completed
//
// Cancelled sits outside the forward order. It is reachable from any status
// except Delivered and Completed and is absorbing.
type Status int

const (
	Unknown Status = iota
	Pending
	PartiallyApproved
	Approved
	DeliveryInProcess
	PartiallyDelivered
	Delivered
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "UNKNOWN",
		Pending:            "PENDING",
		PartiallyApproved:  "PARTIALLY_APPROVED",
		Approved:           "APPROVED",
		DeliveryInProcess:  "DELIVERY_IN_PROCESS",
		PartiallyDelivered: "PARTIALLY_DELIVERED",
		Delivered:          "DELIVERED",
		Completed:          "COMPLETED",
		Cancelled:          "CANCELLED",
	}
}

// Statuses lists every valid status in forward order, Cancelled last.
func Statuses() []Status {
	return []Status{
		Pending, PartiallyApproved, Approved, DeliveryInProcess,
		PartiallyDelivered, Delivered, Completed, Cancelled,
	}
}

// getAdvanceTargets is the set accepted by the explicit (QR) channel.
func getAdvanceTargets() map[Status]struct{} {
	return map[Status]struct{}{
		Approved:          {},
		DeliveryInProcess: {},
		Delivered:         {},
		Completed:         {},
	}
}

// ParseStatus accepts the upper snake case names, case-insensitively.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a known status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the order accepts no further mutation.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsLaterThan compares forward progress. Cancelled is never later or earlier
// than anything.
func (s Status) IsLaterThan(other Status) bool {
	if s == Cancelled || other == Cancelled {
		return false
	}
	return s > other
}

// ForQuantities derives the status after a stock-out from the approved and
// ordered totals. The result never moves behind the current status.
func (s Status) ForQuantities(approved, ordered int) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if ordered <= 0 {
		return Unknown, errs.NewValueIsOutOfRangeError("ordered", ordered, 1, "unbounded")
	}
	if approved < 0 || approved > ordered {
		return Unknown, errs.NewValueIsOutOfRangeError("approved", approved, 0, ordered)
	}

	var target Status
	switch {
	case approved == 0:
		target = Pending
	case approved < ordered && s.IsLaterThan(Approved):
		target = PartiallyDelivered
	case approved < ordered:
		target = PartiallyApproved
	default:
		target = Approved
	}

	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), target.String(), fmt.Errorf("%s is terminal", s))
	}
	if target.IsLaterThan(s) {
		return target, nil
	}
	return s, nil
}

// AdvanceTo applies an explicit status change requested through a QR token.
func (s Status) AdvanceTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if _, ok := getAdvanceTargets()[target]; !ok {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), target.String(), fmt.Errorf("%s cannot be requested explicitly", target))
	}
	if !target.IsLaterThan(s) {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), target.String(), fmt.Errorf("%s is not after %s", target, s))
	}
	return target, nil
}

// Cancel returns Cancelled, or errs.ErrAlreadyCancelled when there is
// nothing left to do.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	switch s {
	case Cancelled:
		return Cancelled, errs.ErrAlreadyCancelled
	case Delivered, Completed:
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), Cancelled.String(), fmt.Errorf("%s orders cannot be cancelled", s))
	default:
		return Cancelled, nil
	}
}
