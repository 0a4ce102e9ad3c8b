package errs

import "errors"

// Domain-specific sentinel errors shared by the domain, usecase and handler layers
var (
	// Validation errors
	ErrValidation = errors.New("validation failed")

	// Seating errors
	ErrTableNotFound   = errors.New("table not found")
	ErrSeatNotFound    = errors.New("seat not found")
	ErrSeatUnavailable = errors.New("seat unavailable")
	ErrSeatInUse       = errors.New("seat is held by an active reservation")
	ErrTableInUse      = errors.New("table has active reservations")

	// Ticket errors
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTicketPoolExhausted = errors.New("no available ticket")
	ErrTicketAlreadyUsed   = errors.New("ticket already used")
	ErrCapacity            = errors.New("ticket code space exhausted")
	ErrRender              = errors.New("ticket render failed")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotPaid             = errors.New("reservation not paid")

	// Seller / setting errors
	ErrSellerNotFound  = errors.New("seller not found")
	ErrSellerInUse     = errors.New("seller has reservations")
	ErrSettingNotFound = errors.New("settings not initialized")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
