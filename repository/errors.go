package repository

import "errors"

// ErrStatusConflict is returned by compare-and-swap updates when the stored
// status no longer matches the expected one (a concurrent request won the race).
var ErrStatusConflict = errors.New("delivery status changed concurrently")

// ErrPaymentExists is returned when a delivery already has a payment recorded.
var ErrPaymentExists = errors.New("payment already recorded for delivery")
