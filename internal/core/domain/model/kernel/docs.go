// Package kernel provides the primitives shared by the fulfillment domain
// model.
//
// The package includes:
//   - UUID: a value object for order, item and event identifiers
//   - Role, Capability and ActingUser: who is calling and what their role
//     may do
//
// Values are immutable and safe for concurrent use.
package kernel
