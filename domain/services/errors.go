package services

import "errors"

// Sentinel errors shared across the storefront services. Handlers match on
// these with errors.Is to pick the response code; everything else is an
// internal failure.
var (
	// ErrInvalidRange is returned by the number generator when a distinct
	// sample of the requested size cannot be drawn from the range.
	ErrInvalidRange = errors.New("invalid number range")

	// ErrInvalidSelection is returned when a ticket line has the wrong
	// length, duplicate numbers, or an out-of-range number.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInsufficientBalance is returned when a debit would overdraw the
	// user's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDataIntegrity is returned at settlement time when a stored purchase
	// does not match its game's shape (e.g. wrong line length).
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrUnknownGame is returned for a game ID not in the catalog.
	ErrUnknownGame = errors.New("unknown game")

	// ErrAlreadyDrawn is returned when winning numbers already exist for a
	// (game, date) pair; sets are never overwritten.
	ErrAlreadyDrawn = errors.New("winning numbers already drawn")

	// ErrUserNotFound is returned when the referenced account does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned on registration with an email already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTransactionProcessed is returned when a deposit/withdrawal request
	// has already been approved or rejected.
	ErrTransactionProcessed = errors.New("transaction already processed")

	// ErrBankInfoIncomplete is returned when a withdrawal is requested
	// before bank details are registered.
	ErrBankInfoIncomplete = errors.New("bank details incomplete")
)
