package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	OwnerID     uint           `json:"owner_id" gorm:"not null;index"`
	Owner       User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string         `json:"name" gorm:"not null"`
	Cuisine     string         `json:"cuisine"`
	Address     string         `json:"address"`
	Phone       string         `json:"phone"`
	Description string         `json:"description"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	Rating      float64        `json:"rating" gorm:"default:0"`
	ReviewCount int            `json:"review_count" gorm:"default:0"`
	Categories  []MenuCategory `json:"categories,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type MenuCategory struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null;index"`
	Name         string     `json:"name" gorm:"not null"`
	SortOrder    int        `json:"sort_order" gorm:"default:0"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	Items        []MenuItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	CategoryID   uint             `json:"category_id" gorm:"not null;index"`
	RestaurantID uint             `json:"restaurant_id" gorm:"not null;index"`
	Name         string           `json:"name" gorm:"not null"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price" gorm:"not null;type:decimal(10,2)"`
	SortOrder    int              `json:"sort_order" gorm:"default:0"`
	IsAvailable  bool             `json:"is_available" gorm:"default:true"`
	IsVeg        bool             `json:"is_veg" gorm:"default:false"`
	Options      []MenuItemOption `json:"options,omitempty" gorm:"foreignKey:MenuItemID"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// MenuItemOption is a priced add-on attached to a menu item. PriceModifier
// may be negative.
type MenuItemOption struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	MenuItemID    uint            `json:"menu_item_id" gorm:"not null;index"`
	Name          string          `json:"name" gorm:"not null"`
	PriceModifier decimal.Decimal `json:"price_modifier" gorm:"type:decimal(10,2)"`
	SortOrder     int             `json:"sort_order" gorm:"default:0"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
