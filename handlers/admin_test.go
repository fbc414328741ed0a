package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAdminUpdateUserRole(t *testing.T) {
	r := setup(t)
	_, adminToken := newUser(t, "admin", models.RoleAdmin)
	user, _ := newUser(t, "harry", models.RoleCustomer)

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", user.ID), adminToken,
		gin.H{"role": "restaurant_owner"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(&user, user.ID).Error)
	require.Equal(t, models.RoleRestaurantOwner, user.Role)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", user.ID), adminToken,
		gin.H{"role": "superuser"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminDeleteUserCascades(t *testing.T) {
	r := setup(t)
	_, adminToken := newUser(t, "admin", models.RoleAdmin)
	owner, _ := newUser(t, "ivy", models.RoleRestaurantOwner)
	restaurant, burger, _, _ := seedCatalog(t, owner.ID)
	seedAddress(t, owner.ID)

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", owner.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	config.DB.Model(&models.User{}).Where("id = ?", owner.ID).Count(&count)
	require.Zero(t, count)
	config.DB.Model(&models.Address{}).Where("user_id = ?", owner.ID).Count(&count)
	require.Zero(t, count, "addresses must be cascaded")
	config.DB.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).Count(&count)
	require.Zero(t, count, "owned restaurants must be cascaded")
	config.DB.Model(&models.MenuItem{}).Where("id = ?", burger.ID).Count(&count)
	require.Zero(t, count, "menu items must be cascaded")
}

func TestRoleGates(t *testing.T) {
	r := setup(t)
	_, customerToken := newUser(t, "jay", models.RoleCustomer)

	w := doJSON(r, http.MethodGet, "/api/admin/users", customerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/api/admin/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewModerationRecomputesRating(t *testing.T) {
	r := setup(t)
	_, adminToken := newUser(t, "admin", models.RoleAdmin)
	owner, _ := newUser(t, "owner", models.RoleRestaurantOwner)
	restaurant, _, _, _ := seedCatalog(t, owner.ID)
	_, token := newUser(t, "kim", models.RoleCustomer)
	_, token2 := newUser(t, "lee", models.RoleCustomer)

	w := doJSON(r, http.MethodPost, "/api/customer/reviews", token,
		gin.H{"restaurant_id": restaurant.ID, "rating": 5, "comment": "great"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Second review from the same user is rejected
	w = doJSON(r, http.MethodPost, "/api/customer/reviews", token,
		gin.H{"restaurant_id": restaurant.ID, "rating": 1})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/api/customer/reviews", token2,
		gin.H{"restaurant_id": restaurant.ID, "rating": 3, "comment": "ok"})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, config.DB.First(&restaurant, restaurant.ID).Error)
	require.Equal(t, 2, restaurant.ReviewCount)
	require.InDelta(t, 4.0, restaurant.Rating, 0.001)

	// Hiding the 3-star review brings the aggregate back to 5
	var review models.Review
	require.NoError(t, config.DB.Where("rating = ?", 3).First(&review).Error)
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/reviews/%d/moderate", review.ID), adminToken,
		gin.H{"approved": false, "reason": "spam"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(&restaurant, restaurant.ID).Error)
	require.Equal(t, 1, restaurant.ReviewCount)
	require.InDelta(t, 5.0, restaurant.Rating, 0.001)
}

func TestAdminSystemStats(t *testing.T) {
	r := setup(t)
	_, adminToken := newUser(t, "admin", models.RoleAdmin)
	owner, _ := newUser(t, "owner", models.RoleRestaurantOwner)
	seedCatalog(t, owner.ID)

	w := doJSON(r, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"users":2`)
	require.Contains(t, w.Body.String(), `"restaurants":1`)
}
