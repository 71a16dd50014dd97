package checkout

import "errors"

var (
	ErrMissingContext       = errors.New("koi data or batch data is missing")
	ErrAmbiguousContext     = errors.New("both koi and batch supplied")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrInsufficientStock    = errors.New("quantity exceeds available stock")
	ErrSubmissionInFlight   = errors.New("a submission is already in progress")
	ErrOrderCreateFailed    = errors.New("failed to process payment, please try again")
)
