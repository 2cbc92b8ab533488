// Package errs provides the error types shared by the fulfillment service.
//
// Generic validation and lookup failures follow one pattern: a sentinel
// (ErrValueIsRequired, ErrObjectNotFound, ...), a struct carrying the details,
// constructors with and without a cause, and Unwrap returning the sentinel so
// callers can match with errors.Is.
//
// Fulfillment specific failures (quantity exceeded, invalid transitions,
// unauthorized roles, expired QR tokens, busy orders, inventory outages) use
// the same shape. KindOf maps any of them, including errors.Join results, to a
// stable Kind that transports translate into status codes.
package errs
