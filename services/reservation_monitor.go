package services

import (
	"time"

	"github.com/dineboard/reservation-app/events"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/utils"
	"gorm.io/gorm"
)

// ReservationMonitor -> background ticker yang menutup reservasi kadaluarsa.
// booked yang lewat jam selesai jadi no_show, seated jadi completed.
type ReservationMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
	Grace    time.Duration
}

func NewReservationMonitor(db *gorm.DB) *ReservationMonitor {
	return &ReservationMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Minute,
		Grace:    15 * time.Minute,
	}
}

func (rm *ReservationMonitor) Start() {
	go func() {
		ticker := time.NewTicker(rm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rm.sweep()
			case <-rm.StopChan:
				return
			}
		}
	}()
}

func (rm *ReservationMonitor) Stop() {
	close(rm.StopChan)
}

func (rm *ReservationMonitor) sweep() {
	cutoff := time.Now().UTC().Add(-rm.Grace)

	rm.sweepStatus(models.ReservationBooked, models.ReservationNoShow, cutoff)
	rm.sweepStatus(models.ReservationSeated, models.ReservationCompleted, cutoff)
}

func (rm *ReservationMonitor) sweepStatus(from, to string, cutoff time.Time) {
	var stale []models.Reservation
	if err := rm.DB.Where("status = ? AND ends_at < ?", from, cutoff).
		Limit(100).
		Find(&stale).Error; err != nil {
		utils.ErrorLogger.Printf("Reservation sweep query failed: %v", err)
		return
	}

	for _, r := range stale {
		if err := rm.DB.Model(&models.Reservation{}).
			Where("id = ? AND status = ?", r.ID, from).
			Update("status", to).Error; err != nil {
			utils.ErrorLogger.Printf("Reservation sweep update failed (id=%d): %v", r.ID, err)
			continue
		}
		r.Status = to
		utils.InfoLogger.Printf("Reservation %s auto-transitioned %s -> %s", r.Code, from, to)
		events.BroadcastReservationUpdate(r)
	}
}
