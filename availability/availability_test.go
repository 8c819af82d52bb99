package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dineboard/reservation-app/models"
)

const testTZ = "Asia/Jakarta"

// setting 10:00-12:00, slot 30 menit, 1 meja 2-kursi. Dipakai di banyak
// skenario di bawah.
func smallMondaySetting() models.ReservationSetting {
	s := weekdayDefault(1, "10:00", "12:00", 30)
	s.CapacitySettings = []models.CapacitySetting{{TableTypeID: 1, Quantity: 1}}
	return s
}

func jakartaTime(y int, m time.Month, d, h, min int) time.Time {
	loc, _ := time.LoadLocation(testTZ)
	return time.Date(y, m, d, h, min, 0, 0, loc)
}

// Senin 7 Sep 2026.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestDailySlotsSingleTableFit(t *testing.T) {
	eng := NewEngine(quietLogger())
	slots, err := eng.DailySlots(Request{
		Date:       monday,
		PartySize:  2,
		Timezone:   testTZ,
		Settings:   []models.ReservationSetting{smallMondaySetting()},
		TableTypes: []models.TableType{twoSeats(1)},
	})
	assert.NoError(t, err)
	assert.Equal(t, []TimeSlot{
		{Start: "10:00", End: "10:30", Available: true},
		{Start: "10:30", End: "11:00", Available: true},
		{Start: "11:00", End: "11:30", Available: true},
		{Start: "11:30", End: "12:00", Available: true},
	}, slots)
}

func TestDailySlotsClosedDay(t *testing.T) {
	eng := NewEngine(quietLogger())

	var settings []models.ReservationSetting
	for dow := 1; dow <= 6; dow++ {
		settings = append(settings, weekdayDefault(dow, "10:00", "22:00", 30))
	}
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	slots, err := eng.DailySlots(Request{
		Date:       sunday,
		PartySize:  2,
		Timezone:   testTZ,
		Settings:   settings,
		TableTypes: []models.TableType{twoSeats(1)},
	})
	assert.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestDailySlotsCombinationFit(t *testing.T) {
	eng := NewEngine(quietLogger())

	s := smallMondaySetting()
	s.CapacitySettings = []models.CapacitySetting{{TableTypeID: 1, Quantity: 2}}

	slots, err := eng.DailySlots(Request{
		Date:       monday,
		PartySize:  4,
		Timezone:   testTZ,
		Settings:   []models.ReservationSetting{s},
		TableTypes: []models.TableType{twoSeats(1)},
	})
	assert.NoError(t, err)
	for _, slot := range slots {
		assert.True(t, slot.Available, slot.Start)
	}
}

func TestDailySlotsExhaustedInventory(t *testing.T) {
	eng := NewEngine(quietLogger())

	existing := models.Reservation{
		StartsAt:  jakartaTime(2026, 9, 7, 10, 0),
		EndsAt:    jakartaTime(2026, 9, 7, 10, 30),
		PartySize: 2,
		Status:    models.ReservationBooked,
	}

	slots, err := eng.DailySlots(Request{
		Date:         monday,
		PartySize:    2,
		Timezone:     testTZ,
		Settings:     []models.ReservationSetting{smallMondaySetting()},
		Reservations: []models.Reservation{existing},
		TableTypes:   []models.TableType{twoSeats(1)},
	})
	assert.NoError(t, err)
	assert.Equal(t, "10:00", slots[0].Start)
	assert.False(t, slots[0].Available)
	assert.Equal(t, "10:30", slots[1].Start)
	assert.True(t, slots[1].Available)
}

func TestDailySlotsCancelledReservationFreesTable(t *testing.T) {
	eng := NewEngine(quietLogger())

	cancelled := models.Reservation{
		StartsAt:  jakartaTime(2026, 9, 7, 10, 0),
		EndsAt:    jakartaTime(2026, 9, 7, 10, 30),
		PartySize: 2,
		Status:    models.ReservationCancelled,
	}

	slots, err := eng.DailySlots(Request{
		Date:         monday,
		PartySize:    2,
		Timezone:     testTZ,
		Settings:     []models.ReservationSetting{smallMondaySetting()},
		Reservations: []models.Reservation{cancelled},
		TableTypes:   []models.TableType{twoSeats(1)},
	})
	assert.NoError(t, err)
	assert.True(t, slots[0].Available)
}

func TestDailySlotsDateSpecificOverride(t *testing.T) {
	eng := NewEngine(quietLogger())

	override := models.ReservationSetting{
		SpecificDate:          datePtr(2026, 9, 7),
		StartTime:             "18:00",
		EndTime:               "20:00",
		TimeslotLengthMinutes: 30,
		CapacitySettings:      []models.CapacitySetting{{TableTypeID: 1, Quantity: 1}},
	}

	slots, err := eng.DailySlots(Request{
		Date:       monday,
		PartySize:  2,
		Timezone:   testTZ,
		Settings:   []models.ReservationSetting{weekdayDefault(1, "10:00", "22:00", 30), override},
		TableTypes: []models.TableType{twoSeats(1)},
	})
	assert.NoError(t, err)
	assert.Len(t, slots, 4)
	assert.Equal(t, "18:00", slots[0].Start)
	assert.Equal(t, "20:00", slots[len(slots)-1].End)
}

func TestDailySlotsReservationOnOtherLocalDateIgnored(t *testing.T) {
	eng := NewEngine(quietLogger())

	// 23:30 UTC Minggu = 06:30 Senin waktu Jakarta: tanggal UTC-nya beda
	// tapi secara lokal jatuh di hari yang ditanyakan. Pastikan filter
	// memakai tanggal lokal, bukan tanggal UTC.
	early := models.Reservation{
		StartsAt:  time.Date(2026, 9, 6, 23, 30, 0, 0, time.UTC),
		EndsAt:    time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		PartySize: 2,
		Status:    models.ReservationBooked,
	}

	s := smallMondaySetting()
	s.StartTime = "06:00"
	s.EndTime = "08:00"

	slots, err := eng.DailySlots(Request{
		Date:         monday,
		PartySize:    2,
		Timezone:     testTZ,
		Settings:     []models.ReservationSetting{s},
		Reservations: []models.Reservation{early},
		TableTypes:   []models.TableType{twoSeats(1)},
	})
	assert.NoError(t, err)
	// Slot 06:30-07:00 harus terblok oleh reservasi tersebut.
	assert.Equal(t, "06:30", slots[1].Start)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[0].Available)
}

func TestDailySlotsIdempotent(t *testing.T) {
	eng := NewEngine(quietLogger())
	req := Request{
		Date:      monday,
		PartySize: 2,
		Timezone:  testTZ,
		Settings:  []models.ReservationSetting{smallMondaySetting()},
		Reservations: []models.Reservation{{
			StartsAt:  jakartaTime(2026, 9, 7, 10, 0),
			EndsAt:    jakartaTime(2026, 9, 7, 10, 30),
			PartySize: 2,
			Status:    models.ReservationBooked,
		}},
		TableTypes: []models.TableType{twoSeats(1)},
	}

	first, err := eng.DailySlots(req)
	assert.NoError(t, err)
	second, err := eng.DailySlots(req)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDailySlotsPartySizeMonotonicity(t *testing.T) {
	eng := NewEngine(quietLogger())

	s := smallMondaySetting()
	s.CapacitySettings = []models.CapacitySetting{
		{TableTypeID: 1, Quantity: 2},
		{TableTypeID: 2, Quantity: 1},
	}
	types := []models.TableType{twoSeats(1), fourSeats(2)}

	available := func(party int) []bool {
		slots, err := eng.DailySlots(Request{
			Date:       monday,
			PartySize:  party,
			Timezone:   testTZ,
			Settings:   []models.ReservationSetting{s},
			TableTypes: types,
		})
		assert.NoError(t, err)
		out := make([]bool, len(slots))
		for i, sl := range slots {
			out[i] = sl.Available
		}
		return out
	}

	prev := available(1)
	for party := 2; party <= 10; party++ {
		cur := available(party)
		for i := range cur {
			if cur[i] {
				assert.True(t, prev[i], "party %d available at slot %d while smaller party was not", party, i)
			}
		}
		prev = cur
	}
}

func TestDailySlotsInputValidation(t *testing.T) {
	eng := NewEngine(quietLogger())

	_, err := eng.DailySlots(Request{Date: monday, PartySize: 0, Timezone: testTZ})
	assert.Error(t, err)

	_, err = eng.DailySlots(Request{PartySize: 2, Timezone: testTZ})
	assert.Error(t, err)

	_, err = eng.DailySlots(Request{Date: monday, PartySize: 2, Timezone: "Not/AZone"})
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
