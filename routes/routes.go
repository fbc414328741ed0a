package routes

import (
	"food-marketplace-api/handlers"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)
		public.GET("/restaurants/:id/reviews", handlers.ListRestaurantReviews)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		// Address book
		customer.GET("/addresses", handlers.ListAddresses)
		customer.POST("/addresses", handlers.CreateAddress)
		customer.PUT("/addresses/:id", handlers.UpdateAddress)
		customer.PUT("/addresses/:id/default", handlers.SetDefaultAddress)
		customer.DELETE("/addresses/:id", handlers.DeleteAddress)

		// Cart
		customer.GET("/cart", handlers.GetCart)
		customer.POST("/cart/items", handlers.AddCartItem)
		customer.PUT("/cart/items/:id", handlers.UpdateCartItem)
		customer.DELETE("/cart/items/:id", handlers.RemoveCartItem)
		customer.DELETE("/cart", handlers.ClearCart)

		// Orders
		customer.POST("/orders", handlers.Checkout)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.POST("/orders/:id/pay", handlers.PayOrder)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)

		// Reviews
		customer.POST("/reviews", handlers.CreateReview)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	owner := r.Group("/api/restaurant")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRestaurantOwner))
	{
		// Restaurant management
		owner.POST("/", handlers.CreateRestaurant)
		owner.GET("/", handlers.GetMyRestaurant)
		owner.PUT("/", handlers.UpdateRestaurant)

		// Category management
		owner.POST("/categories", handlers.CreateCategory)
		owner.PUT("/categories/:categoryId", handlers.UpdateCategory)
		owner.DELETE("/categories/:categoryId", handlers.DeleteCategory)

		// Menu management
		owner.POST("/menu", handlers.AddMenuItem)
		owner.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		owner.DELETE("/menu/:itemId", handlers.DeleteMenuItem)
		owner.POST("/menu/:itemId/options", handlers.AddMenuItemOption)
		owner.DELETE("/menu/:itemId/options/:optionId", handlers.DeleteMenuItemOption)

		// Order management
		owner.GET("/orders", handlers.GetRestaurantOrders)
		owner.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.PUT("/users/:id/role", handlers.AdminUpdateUserRole)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
		admin.PUT("/reviews/:id/moderate", handlers.ModerateReview)
		admin.GET("/stats", handlers.AdminGetSystemStats)
	}
}
