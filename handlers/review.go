package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

type CreateReviewRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	OrderID      *uint  `json:"order_id"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

// recomputeRating refreshes a restaurant's aggregate rating and review
// count over its approved reviews.
func recomputeRating(restaurantID uint) {
	var reviews []models.Review
	config.DB.Where("restaurant_id = ? AND is_approved = ?", restaurantID, true).Find(&reviews)

	var sum float64
	for _, r := range reviews {
		sum += float64(r.Rating)
	}
	rating := 0.0
	if len(reviews) > 0 {
		rating = sum / float64(len(reviews))
	}
	config.DB.Model(&models.Restaurant{}).Where("id = ?", restaurantID).Updates(map[string]interface{}{
		"rating":       rating,
		"review_count": len(reviews),
	})
}

// CreateReview lets a customer review a restaurant, optionally tied to one
// of their delivered orders. One review per user per restaurant.
func CreateReview(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var existing models.Review
	if err := config.DB.Where("user_id = ? AND restaurant_id = ?", userID, req.RestaurantID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this restaurant"})
		return
	}

	if req.OrderID != nil {
		var order models.Order
		if err := config.DB.Where("id = ? AND customer_id = ? AND restaurant_id = ? AND status = ?",
			*req.OrderID, userID, req.RestaurantID, models.StatusDelivered).
			First(&order).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced order must be one of your delivered orders from this restaurant"})
			return
		}
	}

	review := models.Review{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		OrderID:      req.OrderID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		IsApproved:   true,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}
	recomputeRating(req.RestaurantID)

	c.JSON(http.StatusCreated, gin.H{"message": "Review created", "review": review})
}

// ListRestaurantReviews returns approved reviews for a restaurant (public)
func ListRestaurantReviews(c *gin.Context) {
	var reviews []models.Review
	config.DB.Preload("User").
		Where("restaurant_id = ? AND is_approved = ?", c.Param("id"), true).
		Order("created_at desc").
		Find(&reviews)
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

type ModerateReviewRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Reason   string `json:"reason"`
}

// ModerateReview lets an admin approve or hide a review, refreshing the
// restaurant aggregates either way.
func ModerateReview(c *gin.Context) {
	var review models.Review
	if err := config.DB.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	var req ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config.DB.Model(&review).Update("is_approved", *req.Approved)
	recomputeRating(review.RestaurantID)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Review moderated",
		"review_id": review.ID,
		"approved":  *req.Approved,
	})
}
