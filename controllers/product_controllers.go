package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/utils"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> katalog; ?category_id= dan ?active=true untuk filter
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	query := pc.DB.Preload("Category")

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetProductsByCategory -> GET /products/by-category?category=ID
func (pc *ProductController) GetProductsByCategory(c *gin.Context) {
	categoryIDStr := c.Query("category")
	if categoryIDStr == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'category' is required"))
		return
	}

	categoryID, err := strconv.Atoi(categoryIDStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category ID"))
		return
	}

	var products []models.Product
	if err := pc.DB.Preload("Category").
		Where("category_id = ?", categoryID).
		Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("List of products for category ID: %d", categoryID), products)
}

// CreateProduct
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required"`
		Stock       int     `json:"stock"`
		Description string  `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.ProductCategory
	if err := pc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	product := models.Product{
		BusinessID:  businessID(pc.DB),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		IsActive:    true,
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New product created: %s (price=%.2f)", product.Name, product.Price)
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// GetProductByID
func (pc *ProductController) GetProductByID(c *gin.Context) {
	idStr := c.Param("product_id")
	id, _ := strconv.Atoi(idStr)

	var product models.Product
	if err := pc.DB.Preload("Category").First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// UpdateProduct -> partial update
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	idStr := c.Param("product_id")
	id, _ := strconv.Atoi(idStr)

	var req struct {
		CategoryID  *uint    `json:"category_id"`
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		Description *string  `json:"description"`
		IsActive    *bool    `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.CategoryID != nil {
		var category models.ProductCategory
		if err := pc.DB.First(&category, *req.CategoryID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	idStr := c.Param("product_id")
	id, _ := strconv.Atoi(idStr)

	if err := pc.DB.Delete(&models.Product{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
