package handlers

import (
	"net/http"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/payment"
	"food-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Gateway is the payment processor used by checkout; swapped in tests.
var Gateway = payment.NewGateway()

type CheckoutRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	AddressID    uint   `json:"address_id" binding:"required"`
	Notes        string `json:"notes"`
}

type PayOrderRequest struct {
	Method string `json:"method" binding:"required"`
}

// Checkout converts the caller's cart for one restaurant into an order:
// price the cart, insert the order and its item snapshots, delete the
// consumed cart rows. The whole sequence runs in one transaction.
func Checkout(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, customerID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery address not found"})
		return
	}

	var cartItems []models.CartItem
	config.DB.Preload("MenuItem").
		Where("user_id = ? AND restaurant_id = ?", customerID, req.RestaurantID).
		Find(&cartItems)
	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		subtotal = subtotal.Add(ci.LineTotal)
		_, optionNames, err := resolveUnitPrice(&ci.MenuItem, ci.OptionIDs)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Cart line is stale: " + err.Error()})
			return
		}
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID:  ci.MenuItemID,
			Name:        ci.MenuItem.Name,
			OptionNames: optionNames,
			Quantity:    ci.Quantity,
			UnitPrice:   ci.UnitPrice,
			LineTotal:   ci.LineTotal,
		})
	}

	tax := subtotal.Mul(config.S.TaxRate).Round(2)
	fee := config.S.DeliveryFee
	total := subtotal.Add(tax).Add(fee)

	order := models.Order{
		CustomerID:      customerID,
		RestaurantID:    req.RestaurantID,
		Status:          models.StatusCreated,
		Subtotal:        subtotal,
		DeliveryFee:     fee,
		Tax:             tax,
		Total:           total,
		PaymentStatus:   models.PaymentPending,
		DeliveryAddress: address.Street + ", " + address.City,
		Notes:           req.Notes,
		Items:           orderItems,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Payment{
			OrderID: order.ID,
			Amount:  total,
			Status:  models.PaymentPending,
		}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusCreated,
			ChangedBy: customerID,
			Note:      "Order placed by customer",
		}).Error; err != nil {
			return err
		}
		// Consume the cart
		return tx.Where("user_id = ? AND restaurant_id = ?", customerID, req.RestaurantID).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	config.DB.Preload("Items").Preload("Restaurant").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// PayOrder runs the payment gateway against the order's pending payment
func PayOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	var pay models.Payment
	if err := config.DB.Where("order_id = ?", order.ID).First(&pay).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment record not found"})
		return
	}
	if pay.Status != models.PaymentPending {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "Payment can only be processed from pending status",
			"payment_status": pay.Status,
		})
		return
	}

	result := Gateway.ProcessPayment(req.Method, pay.Amount)
	if !result.Success {
		config.DB.Model(&pay).Updates(map[string]interface{}{
			"method":         req.Method,
			"status":         models.PaymentFailed,
			"failure_reason": result.Reason,
		})
		config.DB.Model(&order).Update("payment_status", models.PaymentFailed)
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment failed", "reason": result.Reason})
		return
	}

	config.DB.Model(&pay).Updates(map[string]interface{}{
		"method":         req.Method,
		"status":         models.PaymentCompleted,
		"transaction_id": result.TransactionID,
	})
	config.DB.Model(&order).Update("payment_status", models.PaymentCompleted)

	c.JSON(http.StatusOK, gin.H{
		"message":        "Payment completed",
		"order_id":       order.ID,
		"transaction_id": result.TransactionID,
		"amount":         result.Amount,
	})
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items").Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.
		Preload("Items").
		Preload("Restaurant").
		Preload("StatusHistory").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	elapsed := time.Since(order.CreatedAt).Minutes()
	c.JSON(http.StatusOK, gin.H{"order": order, "minutes_elapsed": int(elapsed)})
}

// CancelOrder cancels an order in its early states. A completed payment is
// refunded through the gateway before the status flips.
func CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	note := "Order cancelled by customer"
	var pay models.Payment
	if err := config.DB.Where("order_id = ?", order.ID).First(&pay).Error; err == nil &&
		pay.Status == models.PaymentCompleted {
		result := Gateway.ProcessRefund(pay.TransactionID, pay.Amount)
		if !result.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Refund failed", "reason": result.Reason})
			return
		}
		config.DB.Model(&pay).Update("status", models.PaymentRefunded)
		config.DB.Model(&order).Update("payment_status", models.PaymentRefunded)
		note = "Order cancelled by customer, payment refunded"
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", models.StatusCancelled)
	config.DB.Create(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusCancelled,
		ChangedBy:  customerID,
		Note:       note,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}
