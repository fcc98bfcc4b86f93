package services

import (
	"errors"

	"github.com/brandworks/crm-api/models"
	"gorm.io/gorm"
)

// AdjustStock adds delta (negative to consume) to an item's quantity. The
// update is conditional so concurrent adjustments can never drive it below zero.
func AdjustStock(db *gorm.DB, id uint, delta int) (*models.InventoryItem, error) {
	res := db.Model(&models.InventoryItem{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}

	var item models.InventoryItem
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, ErrInsufficientStock
	}
	return &item, nil
}
