package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a transient pre-checkout line. UnitPrice is the menu item
// price plus the selected option modifiers; LineTotal is UnitPrice × Qty,
// both precomputed at write time. Rows are deleted when the cart converts
// into an order or on explicit removal.
type CartItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	UserID       uint            `json:"user_id" gorm:"not null;index"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null;index"`
	MenuItemID   uint            `json:"menu_item_id" gorm:"not null"`
	MenuItem     MenuItem        `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	OptionIDs    []uint          `json:"option_ids" gorm:"serializer:json"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"not null;type:decimal(10,2)"`
	LineTotal    decimal.Decimal `json:"line_total" gorm:"not null;type:decimal(10,2)"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
