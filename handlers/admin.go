package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdminGetAllOrders returns all orders with full detail — admin only
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items").
		Preload("Customer").Preload("Restaurant").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	query.Order("created_at desc").Find(&orders)

	// Admin dashboard: aggregate by status
	summary := map[string]int{}
	totalRevenue := decimal.Zero
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue = totalRevenue.Add(o.Total)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminGetAllUsers returns all users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

type UpdateUserRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// AdminUpdateUserRole changes a user's role — admin only
func AdminUpdateUserRole(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	validRoles := map[models.UserRole]bool{
		models.RoleCustomer:        true,
		models.RoleRestaurantOwner: true,
		models.RoleAdmin:           true,
	}
	if !validRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer, restaurant_owner, or admin"})
		return
	}

	config.DB.Model(&user).Update("role", req.Role)
	c.JSON(http.StatusOK, gin.H{"message": "User role updated", "user_id": user.ID, "role": req.Role})
}

// AdminDeleteUser removes a user, cascading to their addresses, cart and
// owned restaurants (with menu entities).
func AdminDeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		var restaurants []models.Restaurant
		tx.Where("owner_id = ?", user.ID).Find(&restaurants)
		for _, r := range restaurants {
			var items []models.MenuItem
			tx.Where("restaurant_id = ?", r.ID).Find(&items)
			for _, it := range items {
				if err := tx.Where("menu_item_id = ?", it.ID).Delete(&models.MenuItemOption{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("restaurant_id = ?", r.ID).Delete(&models.MenuItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("restaurant_id = ?", r.ID).Delete(&models.MenuCategory{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&r).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted", "user_id": user.ID})
}

// AdminGetAllRestaurants returns all restaurants — admin only
func AdminGetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	config.DB.Preload("Owner").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// AdminGetSystemStats returns platform-wide counts and revenue
func AdminGetSystemStats(c *gin.Context) {
	var userCount, restaurantCount, orderCount, reviewCount int64
	config.DB.Model(&models.User{}).Count(&userCount)
	config.DB.Model(&models.Restaurant{}).Count(&restaurantCount)
	config.DB.Model(&models.Order{}).Count(&orderCount)
	config.DB.Model(&models.Review{}).Count(&reviewCount)

	var orders []models.Order
	config.DB.Find(&orders)
	byStatus := map[string]int{}
	revenue := decimal.Zero
	for _, o := range orders {
		byStatus[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			revenue = revenue.Add(o.Total)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":            userCount,
		"restaurants":      restaurantCount,
		"orders":           orderCount,
		"reviews":          reviewCount,
		"orders_by_status": byStatus,
		"total_revenue":    revenue,
	})
}

// AdminForceOrderStatus lets admin override any order state (emergency use)
func AdminForceOrderStatus(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Reason string             `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	prevStatus := order.Status
	config.DB.Model(&order).Update("status", req.Status)

	config.DB.Create(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  adminID,
		Note:       "[ADMIN OVERRIDE] " + req.Reason,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status force-updated by admin",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}
