package controllers

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission      = &CustomError{"You do not have permission"}
	ErrSlotUnavailable   = &CustomError{"Requested slot is no longer available"}
	ErrOutsideHours      = &CustomError{"Requested time is outside operating hours"}
	ErrBusinessClosed    = &CustomError{"Business is closed on the requested date"}
	ErrTooFarInAdvance   = &CustomError{"Requested date is beyond the allowed booking window"}
	ErrInvalidTransition = &CustomError{"Invalid reservation status transition"}
)
