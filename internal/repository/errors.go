// Sentinel errors reused across repositories.  These let handlers
// distinguish failure scenarios with errors.Is and map them onto HTTP
// status codes: ErrConflict -> 409, the various not-found values -> 404,
// ErrOrderNotPending -> 400.
package repository

import "errors"

// ErrConflict is returned when an insert collides with an existing unique
// value (duplicate email, brand name, coupon code, SKU, ...).
var ErrConflict = errors.New("conflict")

// ErrEmailExists is the user-repo flavor of ErrConflict kept for callers
// that want the specific message.
var ErrEmailExists = errors.New("email already exists")

// ErrSessionNotFound is returned by SessionRepo.Close when no active
// session matches the exact (user, token) pair: the caller is either
// already logged out or presented a token from another session.
var ErrSessionNotFound = errors.New("active session not found")

// ErrCouponNotFound is returned when a coupon code or id does not exist.
var ErrCouponNotFound = errors.New("coupon not found")

// ErrOrderNotFound is returned when an order id does not exist or does
// not belong to the requesting user.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderNotPending is returned when deleting an order whose status has
// moved past "pending".
var ErrOrderNotPending = errors.New("only pending orders can be deleted")
