package handlers

import (
	"net/http"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetRestaurantOrders returns all orders for the restaurant owner
func GetRestaurantOrders(c *gin.Context) {
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}

	var orders []models.Order
	query := config.DB.Preload("Items").Preload("Customer").
		Where("restaurant_id = ?", restaurant.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query.Order("created_at desc").Find(&orders)

	// Dashboard summary: counts by status
	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status     models.OrderStatus `json:"status" binding:"required"`
	Note       string             `json:"note"`
	EtaMinutes int                `json:"eta_minutes"`
}

// UpdateOrderStatus handles the owner's state transitions. Moving to
// out_for_delivery attaches an estimated delivery timestamp.
func UpdateOrderStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurant, ok := ownerRestaurant(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "restaurant_owner"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	update := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusOutForDelivery {
		eta := req.EtaMinutes
		if eta <= 0 {
			eta = 30
		}
		at := time.Now().Add(time.Duration(eta) * time.Minute)
		update["estimated_delivery_at"] = &at
	}
	config.DB.Model(&order).Updates(update)

	config.DB.Create(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  ownerID,
		Note:       req.Note,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": string(prevStatus),
		"current_status":  string(req.Status),
	})
}
