package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dineboard/reservation-app/availability"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/router"
	"github.com/dineboard/reservation-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndReservationFlow menguji flow utama back-office:
// 0. Seed business + admin, lalu login -> token
// 1. Buat tipe meja dan jam operasional lewat API
// 2. Cek availability publik
// 3. Booking slot, cek slot terpakai
// 4. Logout -> token tidak berlaku lagi
func TestEndToEndReservationFlow(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	token := loginTest(t, r)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	dateStr := tomorrow.Format("2006-01-02")

	twoSeatID := createTableTypeTest(t, r, token, "Dua Kursi", 2)
	fourSeatID := createTableTypeTest(t, r, token, "Empat Kursi", 4)
	createSettingTest(t, r, token, int(tomorrow.Weekday()), twoSeatID, fourSeatID)

	// Window 18:00-21:00 slot 90m -> 18:00 dan 19:30
	slots := queryAvailabilityTest(t, r, dateStr, 4)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[0].Available || !slots[1].Available {
		t.Fatalf("expected all slots available, got %+v", slots)
	}

	// Party 4 menempati satu-satunya meja empat kursi di 18:00
	bookTest(t, r, token, dateStr, "18:00", 4, http.StatusCreated)

	slots = queryAvailabilityTest(t, r, dateStr, 4)
	if slots[0].Available {
		t.Fatalf("expected 18:00 taken for party of 4, got %+v", slots[0])
	}
	if !slots[1].Available {
		t.Fatalf("expected 19:30 still open, got %+v", slots[1])
	}

	// Meja dua kursi masih lepas untuk party kecil di jam yang sama
	slots = queryAvailabilityTest(t, r, dateStr, 2)
	if !slots[0].Available {
		t.Fatalf("expected 18:00 still open for party of 2, got %+v", slots[0])
	}
	bookTest(t, r, token, dateStr, "18:00", 2, http.StatusCreated)

	// Sekarang 18:00 benar-benar penuh
	slots = queryAvailabilityTest(t, r, dateStr, 2)
	if slots[0].Available {
		t.Fatalf("expected 18:00 fully booked, got %+v", slots[0])
	}
	bookTest(t, r, token, dateStr, "18:00", 2, http.StatusConflict)

	// Logout membuat token masuk blacklist
	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout fail: code=%d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected blacklisted token rejected, got %d", w.Code)
	}
}

// setupIntegrationDB -> migrasi model di SQLite in-memory + seed data
func setupIntegrationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.TableType{},
		&models.ReservationSetting{},
		&models.CapacitySetting{},
		&models.Customer{},
		&models.Reservation{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Admin",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Role:     "admin",
	})

	db.Create(&models.Business{
		Name:                   "Test Bistro",
		Timezone:               "UTC",
		MaxBookingAdvanceHours: 720,
	})

	return db
}

func loginTest(t *testing.T, r *gin.Engine) string {
	body, _ := json.Marshal(map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	})

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("loginTest fail: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Token == "" {
		t.Fatalf("loginTest: token empty")
	}

	return resp.Data.Token
}

func authedJSON(t *testing.T, r *gin.Engine, token, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTableTypeTest(t *testing.T, r *gin.Engine, token, name string, seats int) uint {
	w := authedJSON(t, r, token, http.MethodPost, "/admin/table-types", map[string]interface{}{
		"name":  name,
		"seats": seats,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("createTableTypeTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.TableType `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Data.ID
}

func createSettingTest(t *testing.T, r *gin.Engine, token string, dayOfWeek int, twoSeatID, fourSeatID uint) {
	w := authedJSON(t, r, token, http.MethodPost, "/admin/settings", map[string]interface{}{
		"day_of_week":             dayOfWeek,
		"start_time":              "18:00",
		"end_time":                "21:00",
		"timeslot_length_minutes": 90,
		"capacity_settings": []map[string]interface{}{
			{"table_type_id": twoSeatID, "quantity": 1},
			{"table_type_id": fourSeatID, "quantity": 1},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("createSettingTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}
}

func queryAvailabilityTest(t *testing.T, r *gin.Engine, date string, partySize int) []availability.TimeSlot {
	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/availability?date=%s&party_size=%d", date, partySize), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("queryAvailabilityTest: code=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Slots []availability.TimeSlot `json:"slots"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Data.Slots
}

func bookTest(t *testing.T, r *gin.Engine, token, date, startTime string, partySize, wantCode int) {
	w := authedJSON(t, r, token, http.MethodPost, "/admin/reservations", map[string]interface{}{
		"date":       date,
		"start_time": startTime,
		"party_size": partySize,
	})
	if w.Code != wantCode {
		t.Fatalf("bookTest %s %s party=%d: expected %d, got %d, body=%s",
			date, startTime, partySize, wantCode, w.Code, w.Body.String())
	}
}
