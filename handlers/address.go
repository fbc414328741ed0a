package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddressRequest struct {
	Label     string `json:"label"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"is_default"`
}

// ListAddresses returns the caller's address book
func ListAddresses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var addresses []models.Address
	config.DB.Where("user_id = ?", userID).Order("is_default desc, created_at asc").Find(&addresses)
	c.JSON(http.StatusOK, gin.H{"count": len(addresses), "addresses": addresses})
}

// CreateAddress adds an address; marking it default unsets any previous default
func CreateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := models.Address{
		UserID:    userID,
		Label:     req.Label,
		Street:    req.Street,
		City:      req.City,
		Zip:       req.Zip,
		IsDefault: req.IsDefault,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = ?", userID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address created", "address": address})
}

// UpdateAddress updates fields of one of the caller's addresses
func UpdateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"label": true, "street": true, "city": true, "zip": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&address).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "address": address})
}

// SetDefaultAddress marks one address default and unsets the previous one
func SetDefaultAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&address).Update("is_default", true).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Default address updated", "address_id": address.ID})
}

// DeleteAddress removes one of the caller's addresses
func DeleteAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	config.DB.Delete(&address)
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
