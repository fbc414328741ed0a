package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"food-marketplace-api/config"
	"food-marketplace-api/handlers"
	"food-marketplace-api/models"
	"food-marketplace-api/payment"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// useGateway swaps the handlers' payment gateway for a deterministic one.
func useGateway(t *testing.T, g *payment.Gateway) {
	t.Helper()
	old := handlers.Gateway
	handlers.Gateway = g
	t.Cleanup(func() { handlers.Gateway = old })
}

func seedAddress(t *testing.T, userID uint) models.Address {
	t.Helper()
	address := models.Address{UserID: userID, Street: "3 Elm St", City: "Springfield", IsDefault: true}
	require.NoError(t, config.DB.Create(&address).Error)
	return address
}

// fillCart puts 2× burger-with-cheese and 1× fries into the customer cart.
func fillCart(t *testing.T, r *gin.Engine, token string, burger models.MenuItem, cheese models.MenuItemOption, fries models.MenuItem) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/customer/cart/items", token, gin.H{
		"menu_item_id": burger.ID, "quantity": 2, "option_ids": []uint{cheese.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/customer/cart/items", token, gin.H{
		"menu_item_id": fries.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCartRejectsCrossRestaurantMix(t *testing.T) {
	r := setup(t)
	owner, _ := newUser(t, "owner1", models.RoleRestaurantOwner)
	owner2, _ := newUser(t, "owner2", models.RoleRestaurantOwner)
	_, burger, _, _ := seedCatalog(t, owner.ID)

	other := models.Restaurant{OwnerID: owner2.ID, Name: "Other Place", IsActive: true}
	require.NoError(t, config.DB.Create(&other).Error)
	otherCat := models.MenuCategory{RestaurantID: other.ID, Name: "Mains", IsActive: true}
	require.NoError(t, config.DB.Create(&otherCat).Error)
	pizza := models.MenuItem{
		CategoryID: otherCat.ID, RestaurantID: other.ID,
		Name: "Pizza", Price: decimal.NewFromFloat(8.00), IsAvailable: true,
	}
	require.NoError(t, config.DB.Create(&pizza).Error)

	_, token := newUser(t, "carol", models.RoleCustomer)

	w := doJSON(r, http.MethodPost, "/api/customer/cart/items", token, gin.H{
		"menu_item_id": burger.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/customer/cart/items", token, gin.H{
		"menu_item_id": pizza.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusConflict, w.Code, "cart must stay bound to one restaurant")
}

func TestCheckoutComputesTotalsAndEmptiesCart(t *testing.T) {
	r := setup(t)
	owner, _ := newUser(t, "owner", models.RoleRestaurantOwner)
	restaurant, burger, cheese, fries := seedCatalog(t, owner.ID)
	customer, token := newUser(t, "dave", models.RoleCustomer)
	address := seedAddress(t, customer.ID)

	fillCart(t, r, token, burger, cheese, fries)

	w := doJSON(r, http.MethodPost, "/api/customer/orders", token, gin.H{
		"restaurant_id": restaurant.ID, "address_id": address.ID, "notes": "ring twice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").Where("customer_id = ?", customer.ID).First(&order).Error)

	// 2 × (10.00 + 2.00) + 1 × 5.50 = 29.50
	require.True(t, order.Subtotal.Equal(decimal.NewFromFloat(29.50)), "subtotal = %s", order.Subtotal)
	// 29.50 × 0.08 = 2.36
	require.True(t, order.Tax.Equal(decimal.NewFromFloat(2.36)), "tax = %s", order.Tax)
	require.True(t, order.DeliveryFee.Equal(decimal.NewFromFloat(4.99)))
	require.True(t, order.Total.Equal(decimal.NewFromFloat(36.85)), "total = %s", order.Total)
	require.Equal(t, models.StatusCreated, order.Status)
	require.Equal(t, models.PaymentPending, order.PaymentStatus)
	require.Len(t, order.Items, 2)

	// item snapshots carry names and options
	for _, it := range order.Items {
		if it.Name == "Burger" {
			require.Equal(t, "Cheese", it.OptionNames)
			require.True(t, it.UnitPrice.Equal(decimal.NewFromFloat(12.00)))
		}
	}

	// Cart is consumed
	var count int64
	config.DB.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&count)
	require.Zero(t, count, "checkout must empty the cart")

	// A pending payment row exists
	var pay models.Payment
	require.NoError(t, config.DB.Where("order_id = ?", order.ID).First(&pay).Error)
	require.Equal(t, models.PaymentPending, pay.Status)
	require.True(t, pay.Amount.Equal(order.Total))

	// Empty cart cannot check out again
	w = doJSON(r, http.MethodPost, "/api/customer/orders", token, gin.H{
		"restaurant_id": restaurant.ID, "address_id": address.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayAndRefundOnCancel(t *testing.T) {
	r := setup(t)
	useGateway(t, payment.NewTestGateway(1, 0, 0))

	owner, _ := newUser(t, "owner", models.RoleRestaurantOwner)
	restaurant, burger, cheese, fries := seedCatalog(t, owner.ID)
	customer, token := newUser(t, "erin", models.RoleCustomer)
	address := seedAddress(t, customer.ID)
	fillCart(t, r, token, burger, cheese, fries)

	w := doJSON(r, http.MethodPost, "/api/customer/orders", token, gin.H{
		"restaurant_id": restaurant.ID, "address_id": address.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, config.DB.Where("customer_id = ?", customer.ID).First(&order).Error)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/customer/orders/%d/pay", order.ID), token, gin.H{"method": "card"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pay models.Payment
	require.NoError(t, config.DB.Where("order_id = ?", order.ID).First(&pay).Error)
	require.Equal(t, models.PaymentCompleted, pay.Status)
	require.NotEmpty(t, pay.TransactionID)

	// Processing is only permitted from pending
	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/customer/orders/%d/pay", order.ID), token, gin.H{"method": "card"})
	require.Equal(t, http.StatusConflict, w.Code)

	// Cancelling a paid order refunds it
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/customer/orders/%d/cancel", order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, config.DB.Where("order_id = ?", order.ID).First(&pay).Error)
	require.Equal(t, models.PaymentRefunded, pay.Status)
	require.NoError(t, config.DB.First(&order, order.ID).Error)
	require.Equal(t, models.StatusCancelled, order.Status)
	require.Equal(t, models.PaymentRefunded, order.PaymentStatus)
}

func TestPaymentFailure(t *testing.T) {
	r := setup(t)
	useGateway(t, payment.NewTestGateway(1, 1, 0)) // payments always decline

	owner, _ := newUser(t, "owner", models.RoleRestaurantOwner)
	restaurant, burger, cheese, fries := seedCatalog(t, owner.ID)
	customer, token := newUser(t, "frank", models.RoleCustomer)
	address := seedAddress(t, customer.ID)
	fillCart(t, r, token, burger, cheese, fries)

	w := doJSON(r, http.MethodPost, "/api/customer/orders", token, gin.H{
		"restaurant_id": restaurant.ID, "address_id": address.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, config.DB.Where("customer_id = ?", customer.ID).First(&order).Error)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/customer/orders/%d/pay", order.ID), token, gin.H{"method": "card"})
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var pay models.Payment
	require.NoError(t, config.DB.Where("order_id = ?", order.ID).First(&pay).Error)
	require.Equal(t, models.PaymentFailed, pay.Status)
	require.NotEmpty(t, pay.FailureReason)

	// A failed payment is not retryable through the same row
	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/customer/orders/%d/pay", order.ID), token, gin.H{"method": "card"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestOwnerStatusTransitions(t *testing.T) {
	r := setup(t)
	owner, ownerToken := newUser(t, "owner", models.RoleRestaurantOwner)
	restaurant, burger, cheese, fries := seedCatalog(t, owner.ID)
	customer, token := newUser(t, "gina", models.RoleCustomer)
	address := seedAddress(t, customer.ID)
	fillCart(t, r, token, burger, cheese, fries)

	w := doJSON(r, http.MethodPost, "/api/customer/orders", token, gin.H{
		"restaurant_id": restaurant.ID, "address_id": address.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, config.DB.Where("customer_id = ?", customer.ID).First(&order).Error)
	statusURL := fmt.Sprintf("/api/restaurant/orders/%d/status", order.ID)

	// Cannot skip straight to delivered
	w = doJSON(r, http.MethodPut, statusURL, ownerToken, gin.H{"status": "delivered"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	for _, status := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing, models.StatusOutForDelivery, models.StatusDelivered,
	} {
		w = doJSON(r, http.MethodPut, statusURL, ownerToken, gin.H{"status": status, "eta_minutes": 25})
		require.Equal(t, http.StatusOK, w.Code, "transition to %s: %s", status, w.Body.String())
	}

	require.NoError(t, config.DB.First(&order, order.ID).Error)
	require.Equal(t, models.StatusDelivered, order.Status)
	require.NotNil(t, order.EstimatedDeliveryAt, "out_for_delivery must attach an ETA")

	// Full audit trail: created + 4 transitions
	var histories []models.OrderStatusHistory
	config.DB.Where("order_id = ?", order.ID).Find(&histories)
	require.Len(t, histories, 5)

	// Customer cannot cancel a delivered order
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/customer/orders/%d/cancel", order.ID), token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
