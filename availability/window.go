package availability

import (
	"fmt"
	"time"

	"github.com/dineboard/reservation-app/models"
)

// Window is the operating window in effect for one calendar date:
// open/close time, slot granularity, and the table inventory for the day.
type Window struct {
	StartMinute int
	EndMinute   int
	SlotLength  int
	Capacity    []models.CapacitySetting
}

// ResolveWindow selects the effective ReservationSetting for the given
// business-local date. A specific-date override (holiday hours) wins
// unconditionally over the weekly default for that weekday. When neither
// applies the business is closed that date: ok=false, no error.
//
// Duplicate settings at the same precedence are a configuration error and
// surface as ErrAmbiguousSettings rather than being silently adjudicated.
func ResolveWindow(date time.Time, settings []models.ReservationSetting) (Window, bool, error) {
	var override, weekday *models.ReservationSetting

	for i := range settings {
		s := &settings[i]
		switch {
		case s.SpecificDate != nil:
			if sameCivilDate(*s.SpecificDate, date) {
				if override != nil {
					return Window{}, false, fmt.Errorf("%w: two overrides for %s",
						ErrAmbiguousSettings, date.Format("2006-01-02"))
				}
				override = s
			}
		case s.IsDefault && s.DayOfWeek != nil:
			if *s.DayOfWeek == int(date.Weekday()) {
				if weekday != nil {
					return Window{}, false, fmt.Errorf("%w: two defaults for %s",
						ErrAmbiguousSettings, date.Weekday())
				}
				weekday = s
			}
		}
	}

	selected := override
	if selected == nil {
		selected = weekday
	}
	if selected == nil {
		return Window{}, false, nil
	}

	start, err := ParseClock(selected.StartTime)
	if err != nil {
		return Window{}, false, fmt.Errorf("reservation setting %d: %w", selected.ID, err)
	}
	end, err := ParseClock(selected.EndTime)
	if err != nil {
		return Window{}, false, fmt.Errorf("reservation setting %d: %w", selected.ID, err)
	}

	return Window{
		StartMinute: start,
		EndMinute:   end,
		SlotLength:  selected.TimeslotLengthMinutes,
		Capacity:    selected.CapacitySettings,
	}, true, nil
}

// sameCivilDate compares year/month/day only, ignoring location and clock.
func sameCivilDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
