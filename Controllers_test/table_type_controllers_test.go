package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dineboard/reservation-app/controllers"
	"github.com/dineboard/reservation-app/models"
)

func TestTableTypeCRUD(t *testing.T) {
	db := setupTestDB(t)
	seedBusiness(t, db, "UTC")

	r := gin.Default()
	ctrl := controllers.NewTableTypeController(db)
	r.POST("/table-types", ctrl.CreateTableType)
	r.GET("/table-types", ctrl.GetAllTableTypes)
	r.PATCH("/table-types/:type_id", ctrl.UpdateTableType)
	r.DELETE("/table-types/:type_id", ctrl.DeleteTableType)

	// Create
	w := doJSON(r, http.MethodPost, "/table-types", map[string]interface{}{
		"name":  "Dua Kursi",
		"seats": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.TableType `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 2, created.Data.Seats)

	// List
	w = doJSON(r, http.MethodGet, "/table-types", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data []models.TableType `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)

	// Update seats
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/table-types/%d", created.Data.ID),
		map[string]interface{}{"seats": 4})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.TableType
	db.First(&updated, created.Data.ID)
	assert.Equal(t, 4, updated.Seats)

	// Delete
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/table-types/%d", created.Data.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.TableType{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateTableTypeValidation(t *testing.T) {
	db := setupTestDB(t)
	seedBusiness(t, db, "UTC")

	r := gin.Default()
	ctrl := controllers.NewTableTypeController(db)
	r.POST("/table-types", ctrl.CreateTableType)

	// seats wajib minimal 1
	w := doJSON(r, http.MethodPost, "/table-types", map[string]interface{}{
		"name":  "Tanpa Kursi",
		"seats": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
