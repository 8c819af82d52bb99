package services

import (
	"fmt"

	"github.com/dineboard/reservation-app/events"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/utils"
	"gorm.io/gorm"
)

// Sender -> kanal pengiriman notifikasi (log, nanti bisa email/SMS)
type Sender interface {
	Send(title, message string) error
}

// LogSender -> default, cuma menulis ke logger aplikasi
type LogSender struct{}

func (LogSender) Send(title, message string) error {
	utils.InfoLogger.Printf("[notify] %s: %s", title, message)
	return nil
}

type Notifier struct {
	DB     *gorm.DB
	Sender Sender
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{DB: db, Sender: LogSender{}}
}

// ReservationBooked -> catat notifikasi staff + broadcast ke hub
func (n *Notifier) ReservationBooked(r models.Reservation) {
	title := "Reservation booked"
	msg := fmt.Sprintf("Reservation %s for %d guests at %s",
		r.Code, r.PartySize, r.StartsAt.Format("2006-01-02 15:04"))
	n.record(title, msg)
}

// ReservationCancelled -> catat pembatalan supaya host tahu slot lepas
func (n *Notifier) ReservationCancelled(r models.Reservation) {
	title := "Reservation cancelled"
	msg := fmt.Sprintf("Reservation %s (%d guests) was cancelled", r.Code, r.PartySize)
	n.record(title, msg)
}

func (n *Notifier) record(title, msg string) {
	notif := models.Notification{
		Title:   &title,
		Message: msg,
	}
	if err := n.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to store notification: %v", err)
	}

	if err := n.Sender.Send(title, msg); err != nil {
		utils.ErrorLogger.Printf("Failed to send notification: %v", err)
	}

	events.BroadcastStaffNotification(msg)
}
