package handlers

import (
	"errors"
	"net/http"
	"strings"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	OptionIDs  []uint `json:"option_ids"`
}

type UpdateCartItemRequest struct {
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	OptionIDs []uint `json:"option_ids"`
}

// resolveUnitPrice loads the selected options of a menu item and returns
// the per-unit price (item price plus modifiers) and the option names for
// order snapshots. Every id must reference an active option of this item.
func resolveUnitPrice(item *models.MenuItem, optionIDs []uint) (decimal.Decimal, string, error) {
	unit := item.Price
	if len(optionIDs) == 0 {
		return unit, "", nil
	}
	var options []models.MenuItemOption
	config.DB.Where("id IN ? AND menu_item_id = ? AND is_active = ?", optionIDs, item.ID, true).Find(&options)
	if len(options) != len(optionIDs) {
		return decimal.Decimal{}, "", errors.New("one or more selected options are invalid for this item")
	}
	names := make([]string, 0, len(options))
	for _, opt := range options {
		unit = unit.Add(opt.PriceModifier)
		names = append(names, opt.Name)
	}
	return unit, strings.Join(names, ", "), nil
}

// AddCartItem puts a menu item into the caller's cart. The cart is bound
// to a single restaurant; mixing restaurants is rejected.
func AddCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, req.MenuItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if !item.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + item.Name + "' is not available"})
		return
	}

	// Reject cross-restaurant mixes
	var existing models.CartItem
	if err := config.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		if existing.RestaurantID != item.RestaurantID {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Cart already contains items from another restaurant. Clear it first.",
			})
			return
		}
	}

	unit, _, err := resolveUnitPrice(&item, req.OptionIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartItem := models.CartItem{
		UserID:       userID,
		RestaurantID: item.RestaurantID,
		MenuItemID:   item.ID,
		Quantity:     req.Quantity,
		OptionIDs:    req.OptionIDs,
		UnitPrice:    unit,
		LineTotal:    unit.Mul(decimal.NewFromInt(int64(req.Quantity))),
	}
	if err := config.DB.Create(&cartItem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart", "cart_item": cartItem})
}

// GetCart returns the caller's cart with a running subtotal
func GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var items []models.CartItem
	config.DB.Preload("MenuItem").Where("user_id = ?", userID).Order("created_at asc").Find(&items)

	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items, "subtotal": subtotal})
}

// UpdateCartItem changes quantity and/or options, retotaling the line
func UpdateCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var cartItem models.CartItem
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&cartItem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, cartItem.MenuItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	unit, _, err := resolveUnitPrice(&item, req.OptionIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartItem.Quantity = req.Quantity
	cartItem.OptionIDs = req.OptionIDs
	cartItem.UnitPrice = unit
	cartItem.LineTotal = unit.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if err := config.DB.Save(&cartItem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated", "cart_item": cartItem})
}

// RemoveCartItem deletes one line from the caller's cart
func RemoveCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var cartItem models.CartItem
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&cartItem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}
	config.DB.Delete(&cartItem)
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart deletes every line from the caller's cart
func ClearCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	config.DB.Where("user_id = ?", userID).Delete(&models.CartItem{})
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
