package availability

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/dineboard/reservation-app/models"
)

// booking is an active reservation projected onto the queried date,
// expressed in minutes since local midnight. Intervals are half-open.
type booking struct {
	start int
	end   int
	party int
}

// ledger tracks, per slot, how many tables of each type remain unbooked.
// Existing reservations do not store a table assignment, so the ledger
// replays them through the same deterministic seating policy used for new
// parties: sorted by start time, then party size descending, then
// insertion order.
type ledger struct {
	quantity map[uint]int // table type id -> tables available in the window
	seats    map[uint]int // table type id -> seat capacity
	order    []uint       // type ids sorted ascending by seats, then id
	bookings []booking
	logger   *logrus.Logger
}

func newLedger(w Window, types []models.TableType, bookings []booking, logger *logrus.Logger) *ledger {
	seats := make(map[uint]int, len(types))
	for _, t := range types {
		seats[t.ID] = t.Seats
	}

	quantity := make(map[uint]int, len(w.Capacity))
	for _, cs := range w.Capacity {
		if _, known := seats[cs.TableTypeID]; !known {
			// Satu baris inventory rusak tidak boleh menggagalkan seluruh
			// perhitungan: skip dan catat saja.
			logger.Warnf("ignoring capacity entry for unknown table type %d (%s)",
				cs.TableTypeID, cs.TableTypeName)
			continue
		}
		quantity[cs.TableTypeID] += cs.Quantity
	}

	order := make([]uint, 0, len(quantity))
	for id := range quantity {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		if seats[order[i]] != seats[order[j]] {
			return seats[order[i]] < seats[order[j]]
		}
		return order[i] < order[j]
	})

	sorted := append([]booking(nil), bookings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].party > sorted[j].party
	})

	return &ledger{
		quantity: quantity,
		seats:    seats,
		order:    order,
		bookings: sorted,
		logger:   logger,
	}
}

// remaining computes the unbooked table count per type for the slot
// [slotStart, slotStart+slotLen). Counts never go negative: when the
// replay runs out of tables the ledger clamps to zero and logs the
// over-commitment instead of failing, since that indicates an upstream
// booking race, not a reason to break slot rendering.
func (l *ledger) remaining(slotStart, slotLen int) map[uint]int {
	rem := make(map[uint]int, len(l.quantity))
	for id, n := range l.quantity {
		rem[id] = n
	}

	slotEnd := slotStart + slotLen
	for _, b := range l.bookings {
		// Standard half-open interval overlap test.
		if b.start < slotEnd && slotStart < b.end {
			if !seatParty(rem, l.seats, l.order, b.party) {
				l.logger.Warnf("capacity over-committed at %s: party of %d does not fit booked inventory",
					FormatClock(slotStart), b.party)
			}
		}
	}
	return rem
}

// canSeat answers whether a new party fits the remaining inventory without
// committing an assignment; the actual booking happens in a separate write
// transaction.
func (l *ledger) canSeat(remaining map[uint]int, party int) bool {
	rem := make(map[uint]int, len(remaining))
	for id, n := range remaining {
		rem[id] = n
	}
	return seatParty(rem, l.seats, l.order, party)
}
