package coupon

import "errors"

var (
	// ErrUnauthenticated means no signed-in identity was supplied.
	ErrUnauthenticated = errors.New("you must be logged in to buy coupons")
	// ErrNotFound means the listing does not exist, typically because it
	// was already purchased.
	ErrNotFound = errors.New("coupon no longer exists")
	// ErrExpired means the listing's expiry had passed at commit time.
	ErrExpired = errors.New("this coupon has expired")
	// ErrStoreFailure means the atomic unit could not commit, e.g. a write
	// conflict with a concurrent purchase. Not retried automatically.
	ErrStoreFailure = errors.New("could not complete purchase")
)
