package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setup wires handlers to a fresh in-memory database and returns a router.
func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	config.DB = db
	config.Migrate(db)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func newUser(t *testing.T, name string, role models.UserRole) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Name:         name,
		Email:        name + "@test.local",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// seedCatalog creates a restaurant with one category, a burger (10.00)
// carrying a cheese option (+2.00) and fries (5.50).
func seedCatalog(t *testing.T, ownerID uint) (models.Restaurant, models.MenuItem, models.MenuItemOption, models.MenuItem) {
	t.Helper()
	restaurant := models.Restaurant{OwnerID: ownerID, Name: "Testaurant", Address: "1 Main St", IsActive: true}
	require.NoError(t, config.DB.Create(&restaurant).Error)

	category := models.MenuCategory{RestaurantID: restaurant.ID, Name: "Mains", IsActive: true}
	require.NoError(t, config.DB.Create(&category).Error)

	burger := models.MenuItem{
		CategoryID: category.ID, RestaurantID: restaurant.ID,
		Name: "Burger", Price: decimal.NewFromFloat(10.00), IsAvailable: true,
	}
	require.NoError(t, config.DB.Create(&burger).Error)

	cheese := models.MenuItemOption{
		MenuItemID: burger.ID, Name: "Cheese", PriceModifier: decimal.NewFromFloat(2.00), IsActive: true,
	}
	require.NoError(t, config.DB.Create(&cheese).Error)

	fries := models.MenuItem{
		CategoryID: category.ID, RestaurantID: restaurant.ID,
		Name: "Fries", Price: decimal.NewFromFloat(5.50), IsAvailable: true,
	}
	require.NoError(t, config.DB.Create(&fries).Error)

	return restaurant, burger, cheese, fries
}

func TestRegisterAndLogin(t *testing.T) {
	r := setup(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "alice", "email": "alice@test.local", "password": "secret99", "role": "customer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate email is rejected
	w = doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "alice2", "email": "alice@test.local", "password": "secret99", "role": "customer",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@test.local", "password": "secret99",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	w = doJSON(r, http.MethodGet, "/api/profile", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@test.local", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDefaultAddressInvariant(t *testing.T) {
	r := setup(t)
	_, token := newUser(t, "bob", models.RoleCustomer)

	w := doJSON(r, http.MethodPost, "/api/customer/addresses", token, gin.H{
		"label": "home", "street": "1 First St", "city": "Springfield", "is_default": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/customer/addresses", token, gin.H{
		"label": "work", "street": "2 Second St", "city": "Springfield", "is_default": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var addresses []models.Address
	config.DB.Where("is_default = ?", true).Find(&addresses)
	require.Len(t, addresses, 1, "only one default address may exist")
	require.Equal(t, "work", addresses[0].Label)

	// set-default flips back
	var home models.Address
	require.NoError(t, config.DB.Where("label = ?", "home").First(&home).Error)
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/customer/addresses/%d/default", home.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	config.DB.Where("is_default = ?", true).Find(&addresses)
	require.Len(t, addresses, 1)
	require.Equal(t, "home", addresses[0].Label)
}
