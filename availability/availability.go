package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dineboard/reservation-app/models"
)

// Engine menghasilkan daftar slot reservasi untuk satu tanggal. Stateless:
// semua data (settings, inventory, reservasi existing) disuplai caller per
// pemanggilan, sehingga aman dipakai konkuren tanpa lock. Engine hanya
// menjawab "bisa tidak party ini duduk di sini"; penjagaan double-booking
// ada di jalur tulis booking, bukan di sini.
type Engine struct {
	Logger *logrus.Logger
}

func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{Logger: logger}
}

// Request carries everything the engine needs for one availability query.
// Date's year/month/day are taken as the business-local calendar date.
type Request struct {
	Date         time.Time
	PartySize    int
	Timezone     string
	Settings     []models.ReservationSetting
	Reservations []models.Reservation
	TableTypes   []models.TableType
}

// TimeSlot is the engine output: one candidate slot with its availability
// flag. Regenerated on every query, never persisted.
type TimeSlot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// DailySlots returns the ordered slot list for the requested date and
// party size. A date with no applicable setting yields an empty list and
// no error (the caller renders "closed"). An unknown timezone fails with
// ErrInvalidTimezone.
func (e *Engine) DailySlots(req Request) ([]TimeSlot, error) {
	if req.PartySize < 1 {
		return nil, fmt.Errorf("party size must be at least 1, got %d", req.PartySize)
	}
	if req.Date.IsZero() {
		return nil, errors.New("date is required")
	}

	loc, err := Location(req.Timezone)
	if err != nil {
		return nil, err
	}
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	window, open, err := ResolveWindow(date, req.Settings)
	if err != nil {
		return nil, err
	}
	if !open {
		return []TimeSlot{}, nil
	}

	led := newLedger(window, req.TableTypes, e.dayBookings(req.Reservations, date, loc, window.SlotLength), e.logger())

	slots := []TimeSlot{}
	for _, start := range window.SlotStarts() {
		rem := led.remaining(start, window.SlotLength)
		slots = append(slots, TimeSlot{
			Start:     FormatClock(start),
			End:       FormatClock(start + window.SlotLength),
			Available: led.canSeat(rem, req.PartySize),
		})
	}
	return slots, nil
}

// dayBookings proyeksikan reservasi aktif ke tanggal yang diminta, dalam
// menit sejak tengah malam lokal. Reservasi cancelled dan reservasi yang
// jatuh di tanggal lokal lain dibuang di sini.
func (e *Engine) dayBookings(reservations []models.Reservation, date time.Time, loc *time.Location, slotLen int) []booking {
	var day []booking
	for i := range reservations {
		r := &reservations[i]
		if !r.Active() {
			continue
		}
		if !BusinessDate(r.StartsAt, loc).Equal(date) {
			continue
		}
		start := MinuteOfDay(r.StartsAt, loc)
		dur := int(r.EndsAt.Sub(r.StartsAt) / time.Minute)
		if dur <= 0 {
			dur = slotLen
		}
		day = append(day, booking{start: start, end: start + dur, party: r.PartySize})
	}
	return day
}

func (e *Engine) logger() *logrus.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logrus.StandardLogger()
}
