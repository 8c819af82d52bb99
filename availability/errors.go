package availability

import "errors"

var (
	// ErrInvalidTimezone berarti identifier timezone bisnis tidak dikenal.
	// Ini error konfigurasi fatal, bukan kegagalan per-request.
	ErrInvalidTimezone = errors.New("availability: unknown timezone identifier")

	// ErrAmbiguousSettings berarti ada lebih dari satu ReservationSetting
	// dengan precedence yang sama untuk tanggal yang diminta.
	ErrAmbiguousSettings = errors.New("availability: multiple reservation settings apply to the same date")
)
