package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/dineboard/reservation-app/events"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/utils"
	"gorm.io/gorm"
)

type TableTypeController struct {
	DB *gorm.DB
}

func NewTableTypeController(db *gorm.DB) *TableTypeController {
	return &TableTypeController{DB: db}
}

// CreateTableType -> menambahkan tipe meja baru
func (tc *TableTypeController) CreateTableType(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Seats int    `json:"seats" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tableType := models.TableType{
		BusinessID: businessID(tc.DB),
		Name:       req.Name,
		Seats:      req.Seats,
	}

	if err := tc.DB.Create(&tableType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableTypeUpdate(tableType)

	utils.InfoLogger.Printf("New table type created: %s (seats=%d)", tableType.Name, tableType.Seats)
	utils.RespondJSON(c, http.StatusCreated, "Table type created successfully", tableType)
}

// GetAllTableTypes -> menampilkan seluruh tipe meja
func (tc *TableTypeController) GetAllTableTypes(c *gin.Context) {
	var types []models.TableType
	if err := tc.DB.Find(&types).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of table types", types)
}

// GetTableTypeByID -> detail satu tipe meja
func (tc *TableTypeController) GetTableTypeByID(c *gin.Context) {
	typeID := c.Param("type_id")
	var tableType models.TableType
	if err := tc.DB.First(&tableType, typeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table type detail", tableType)
}

// UpdateTableType -> ubah nama/jumlah kursi
func (tc *TableTypeController) UpdateTableType(c *gin.Context) {
	typeID := c.Param("type_id")
	var body struct {
		Name  *string `json:"name"`
		Seats *int    `json:"seats"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var tableType models.TableType
	if err := tc.DB.First(&tableType, typeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		tableType.Name = *body.Name
	}
	if body.Seats != nil {
		tableType.Seats = *body.Seats
	}

	if err := tc.DB.Save(&tableType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableTypeUpdate(tableType)

	utils.InfoLogger.Printf("Table type %d updated (seats=%d)", tableType.ID, tableType.Seats)
	utils.RespondJSON(c, http.StatusOK, "Table type updated", tableType)
}

// DeleteTableType -> menghapus tipe meja
func (tc *TableTypeController) DeleteTableType(c *gin.Context) {
	typeID := c.Param("type_id")
	var tableType models.TableType

	if err := tc.DB.First(&tableType, typeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&tableType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table type %d deleted", tableType.ID)
	utils.RespondJSON(c, http.StatusOK, "Table type deleted", gin.H{
		"id": tableType.ID,
	})
}
