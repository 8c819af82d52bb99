package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dineboard/reservation-app/controllers"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestDB menggunakan SQLite in-memory untuk testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
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

	return db
}

// seedBusiness membuat profil bisnis untuk endpoint yang membutuhkannya
func seedBusiness(t *testing.T, db *gorm.DB, timezone string) models.Business {
	business := models.Business{
		Name:                   "Test Bistro",
		Timezone:               timezone,
		MaxBookingAdvanceHours: 720,
	}
	if err := db.Create(&business).Error; err != nil {
		t.Fatalf("failed to seed business: %v", err)
	}
	return business
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)

	r := gin.Default()
	userCtrl := controllers.NewUserController(db)
	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)

	// --- Register ---
	w := doJSON(r, http.MethodPost, "/register", map[string]string{
		"name":     "Test Host",
		"email":    "host@example.com",
		"password": "password123",
		"role":     "host",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// --- Login dengan password benar ---
	w = doJSON(r, http.MethodPost, "/login", map[string]string{
		"email":    "host@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Token    string `json:"token"`
			UserRole string `json:"user_role"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "host", resp.Data.UserRole)

	// --- Login dengan password salah ---
	w = doJSON(r, http.MethodPost, "/login", map[string]string{
		"email":    "host@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	r := gin.Default()
	userCtrl := controllers.NewUserController(db)
	r.POST("/register", userCtrl.Register)

	payload := map[string]string{
		"name":     "Test Admin",
		"email":    "admin@example.com",
		"password": "secret123",
		"role":     "admin",
	}

	w := doJSON(r, http.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Email unik, pendaftaran kedua harus gagal
	w = doJSON(r, http.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
