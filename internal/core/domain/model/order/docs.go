// Package order holds the SalesOrder aggregate: its status state machine and
// the stock allocation ledger that moves approved quantities.
//
// Status changes come from two sources. Stock-outs derive the status from
// the approved/ordered ratio (Status.ForQuantities) and never move it
// backward. The QR channel requests an explicit forward target
// (Status.AdvanceTo). Cancelled is absorbing and unavailable once an order is
// Delivered or Completed.
//
// Ledger rules:
//   - 0 <= approvedQuantity <= quantity holds for every item at all times
//   - a stock-out is validated in full before any item is touched
//   - cancelling releases the unshipped remainder of every item
package order
