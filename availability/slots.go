package availability

// SlotStarts enumerates candidate slot start minutes between open and
// close time: start, start+Δ, start+2Δ, ... while start+Δ <= close.
// The sequence is empty when the slot length is non-positive or the
// window is inverted, so a misconfigured day simply has no bookable slots.
func (w Window) SlotStarts() []int {
	if w.SlotLength <= 0 || w.StartMinute >= w.EndMinute {
		return nil
	}
	var starts []int
	for s := w.StartMinute; s+w.SlotLength <= w.EndMinute; s += w.SlotLength {
		starts = append(starts, s)
	}
	return starts
}
