package apperr

import "errors"

// Sentinel error kinds. Services wrap these with fmt.Errorf("...: %w", ...)
// so handlers can map them to HTTP statuses with errors.Is without parsing
// message strings.
var (
	// ErrNotFound marks a missing resource: cart, cart line, order,
	// coupon (including an expired one, so callers cannot distinguish
	// "never existed" from "expired").
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a role-scoped access violation. It is kept
	// distinct from ErrNotFound so callers cannot probe for resource
	// existence via the status code.
	ErrForbidden = errors.New("forbidden")

	// ErrUnprocessable marks a semantically invalid request, e.g. a
	// non-positive quantity or a cart line referencing an unknown product.
	ErrUnprocessable = errors.New("unprocessable")

	// ErrConflict marks a state conflict, e.g. a stock decrement that
	// would drive a product's quantity negative.
	ErrConflict = errors.New("conflict")
)
