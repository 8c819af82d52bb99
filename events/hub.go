package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/utils"
)

// Event types yang disiarkan ke dashboard back-office.
const (
	EventReservationCreate = "reservation_create"
	EventReservationUpdate = "reservation_update"
	EventReservationCancel = "reservation_cancel"
	EventSettingUpdate     = "setting_update"
	EventTableTypeUpdate   = "table_type_update"
	EventStaffNotif        = "staff_notification"
	EventDashboardUpdate   = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard (admin, manager, host) per role.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient menambahkan connection ke set dengan role-nya.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient melepaskan connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func BroadcastReservationCreate(r models.Reservation) {
	broadcast(Message{Event: EventReservationCreate, Data: r})
}

func BroadcastReservationUpdate(r models.Reservation) {
	broadcast(Message{Event: EventReservationUpdate, Data: r})
}

func BroadcastReservationCancel(r models.Reservation) {
	broadcast(Message{Event: EventReservationCancel, Data: r})
}

func BroadcastSettingUpdate(s models.ReservationSetting) {
	broadcast(Message{Event: EventSettingUpdate, Data: s})
}

func BroadcastTableTypeUpdate(t models.TableType) {
	broadcast(Message{Event: EventTableTypeUpdate, Data: t})
}

func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: data})
}

func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling event message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending event to client: %v", err)
			continue
		}
	}
}
