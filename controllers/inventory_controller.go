package controllers

import (
	"net/http"
	"strings"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
)

// CreateInventoryRequest represents the request body for adding a stock item
type CreateInventoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity" binding:"gt=0"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
	ReorderLevel int     `json:"reorder_level" binding:"gte=0"`
}

// UpdateInventoryRequest is like CreateInventoryRequest but allows running out of stock
type UpdateInventoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity" binding:"gte=0"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
	ReorderLevel int     `json:"reorder_level" binding:"gte=0"`
}

// AdjustInventoryRequest is a signed stock movement
type AdjustInventoryRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// ListInventory handles GET /api/inventory - filters: category, search, low_stock
func ListInventory(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	query := config.GetDB().Model(&models.InventoryItem{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if c.Query("low_stock") == "true" {
		query = query.Where("quantity <= reorder_level")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondInternalError(c, "Failed to count inventory", err)
		return
	}

	var items []models.InventoryItem
	err := query.Order("name ASC, id ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&items).Error
	if err != nil {
		respondInternalError(c, "Failed to retrieve inventory", err)
		return
	}
	respondList(c, items, pagination, total)
}

// GetInventoryItem handles GET /api/inventory/:id
func GetInventoryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var item models.InventoryItem
	if !loadRecord(c, &item, id, "INVENTORY_ITEM") {
		return
	}
	respondOK(c, http.StatusOK, item)
}

// CreateInventoryItem handles POST /api/inventory - quantity must be positive
func CreateInventoryItem(c *gin.Context) {
	var req CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item := models.InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitPrice:    money(req.UnitPrice),
		ReorderLevel: req.ReorderLevel,
	}
	if err := config.GetDB().Create(&item).Error; err != nil {
		respondInternalError(c, "Failed to create inventory item", err)
		return
	}
	respondOK(c, http.StatusCreated, item)
}

// UpdateInventoryItem handles PUT /api/inventory/:id
func UpdateInventoryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var item models.InventoryItem
	if !loadRecord(c, &item, id, "INVENTORY_ITEM") {
		return
	}
	item.Name = req.Name
	item.Category = req.Category
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	item.UnitPrice = money(req.UnitPrice)
	item.ReorderLevel = req.ReorderLevel

	if err := config.GetDB().Save(&item).Error; err != nil {
		respondInternalError(c, "Failed to update inventory item", err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

// AdjustInventoryItem handles PATCH /api/inventory/:id/adjust
func AdjustInventoryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := services.AdjustStock(config.GetDB(), id, req.Delta)
	if err != nil {
		respondServiceError(c, "INVENTORY_ITEM", err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

// DeleteInventoryItem handles DELETE /api/inventory/:id
func DeleteInventoryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleteRecord(c, &models.InventoryItem{}, id, "INVENTORY_ITEM")
}
