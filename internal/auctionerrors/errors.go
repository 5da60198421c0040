package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrOutcomeNotFound = errors.New("auction outcome not found")
	// ErrVersionConflict is returned when a conditional write lost a race:
	// the listing's ledger length or status no longer matches what the
	// caller validated against.
	ErrVersionConflict = errors.New("listing state changed concurrently")
)

// business logic errors
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrAuctionNotOpen         = errors.New("auction is not open for bidding")
	ErrInvalidFirstBid        = errors.New("first bid must equal the base price")
	ErrBidTooLow              = errors.New("bid amount too low")
	ErrSelfSellerBid          = errors.New("seller may not bid on own listing")
	ErrCancellationNotAllowed = errors.New("listing cannot be cancelled")
	ErrSettlementNotAllowed   = errors.New("listing cannot be settled")
	// ErrBusy is retryable: the per-listing critical section could not be
	// entered within the configured timeout.
	ErrBusy = errors.New("listing is busy, retry with latest bid state")
)
