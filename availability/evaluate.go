package availability

// seatParty consumes tables from rem to seat a party, reporting whether the
// party fits. The assignment policy is deterministic so availability is
// reproducible:
//
//  1. prefer the smallest single table whose seats >= party (least wasted
//     capacity);
//  2. otherwise combine tables largest-first until accumulated seats cover
//     the party, bounded by remaining counts per type.
//
// On failure the partial combination is still consumed: the ledger uses
// this to clamp over-committed inventory at zero while replaying bookings.
func seatParty(rem map[uint]int, seats map[uint]int, order []uint, party int) bool {
	// Single-table fit, smallest type first.
	for _, id := range order {
		if rem[id] > 0 && seats[id] >= party {
			rem[id]--
			return true
		}
	}

	// Greedy combination, largest type first.
	needed := party
	for i := len(order) - 1; i >= 0 && needed > 0; i-- {
		id := order[i]
		if seats[id] <= 0 || rem[id] <= 0 {
			continue
		}
		n := (needed + seats[id] - 1) / seats[id]
		if n > rem[id] {
			n = rem[id]
		}
		rem[id] -= n
		needed -= n * seats[id]
	}
	return needed <= 0
}
