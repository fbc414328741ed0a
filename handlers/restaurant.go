package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Cuisine     string `json:"cuisine"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

// ownerRestaurant resolves the caller's restaurant or writes a 404.
func ownerRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return nil, false
	}
	return &restaurant, true
}

// CreateRestaurant lets an owner-role user create their restaurant
func CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     ownerID,
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
		IsActive:    true,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// GetMyRestaurant fetches the restaurant owned by the logged-in user
func GetMyRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Preload("Categories.Items.Options").
		Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// UpdateRestaurant updates restaurant details
func UpdateRestaurant(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{"name": true, "cuisine": true, "address": true, "phone": true, "description": true, "is_active": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(restaurant).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// ── Category Management ─────────────────────────────────────────────────────

type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// CreateCategory adds a menu category to the restaurant
func CreateCategory(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := models.MenuCategory{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		SortOrder:    req.SortOrder,
		IsActive:     true,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// UpdateCategory updates a category owned by the caller
func UpdateCategory(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}
	var category models.MenuCategory
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("categoryId"), restaurant.ID).
		First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "sort_order": true, "is_active": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&category).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": category})
}

// DeleteCategory removes a category and its items
func DeleteCategory(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}
	var category models.MenuCategory
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("categoryId"), restaurant.ID).
		First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	config.DB.Where("category_id = ?", category.ID).Delete(&models.MenuItem{})
	config.DB.Delete(&category)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ── Menu Management ─────────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	SortOrder   int             `json:"sort_order"`
	IsVeg       bool            `json:"is_veg"`
}

// AddMenuItem adds a new item to one of the restaurant's categories
func AddMenuItem(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
		return
	}

	var category models.MenuCategory
	if err := config.DB.Where("id = ? AND restaurant_id = ?", req.CategoryID, restaurant.ID).
		First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	item := models.MenuItem{
		CategoryID:   category.ID,
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		SortOrder:    req.SortOrder,
		IsVeg:        req.IsVeg,
		IsAvailable:  true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateMenuItem updates a menu item (only by the owner)
func UpdateMenuItem(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}
	var item models.MenuItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("itemId"), restaurant.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "description": true, "price": true, "sort_order": true, "is_available": true, "is_veg": true, "category_id": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&item).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item and its options
func DeleteMenuItem(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}
	var item models.MenuItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("itemId"), restaurant.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	config.DB.Where("menu_item_id = ?", item.ID).Delete(&models.MenuItemOption{})
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ── Option Management ───────────────────────────────────────────────────────

type CreateOptionRequest struct {
	Name          string          `json:"name" binding:"required"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	SortOrder     int             `json:"sort_order"`
}

// AddMenuItemOption attaches a priced add-on to a menu item
func AddMenuItemOption(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}
	var item models.MenuItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("itemId"), restaurant.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	option := models.MenuItemOption{
		MenuItemID:    item.ID,
		Name:          req.Name,
		PriceModifier: req.PriceModifier,
		SortOrder:     req.SortOrder,
		IsActive:      true,
	}
	if err := config.DB.Create(&option).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add option"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Option added", "option": option})
}

// DeleteMenuItemOption removes an option from one of the owner's items
func DeleteMenuItemOption(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}
	var item models.MenuItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("itemId"), restaurant.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	var option models.MenuItemOption
	if err := config.DB.Where("id = ? AND menu_item_id = ?", c.Param("optionId"), item.ID).
		First(&option).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Option not found"})
		return
	}
	config.DB.Delete(&option)
	c.JSON(http.StatusOK, gin.H{"message": "Option deleted"})
}
