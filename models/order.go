package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of a food delivery order
type OrderStatus string

const (
	StatusCreated        OrderStatus = "created"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID                  uint                 `json:"id" gorm:"primaryKey"`
	CustomerID          uint                 `json:"customer_id" gorm:"not null;index"`
	Customer            User                 `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID        uint                 `json:"restaurant_id" gorm:"not null;index"`
	Restaurant          Restaurant           `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status              OrderStatus          `json:"status" gorm:"not null;default:'created'"`
	Subtotal            decimal.Decimal      `json:"subtotal" gorm:"not null;type:decimal(10,2)"`
	DeliveryFee         decimal.Decimal      `json:"delivery_fee" gorm:"not null;type:decimal(10,2)"`
	Tax                 decimal.Decimal      `json:"tax" gorm:"not null;type:decimal(10,2)"`
	Total               decimal.Decimal      `json:"total" gorm:"not null;type:decimal(10,2)"`
	PaymentStatus       PaymentStatus        `json:"payment_status" gorm:"not null;default:'pending'"`
	DeliveryAddress     string               `json:"delivery_address" gorm:"not null"` // snapshot, not a foreign key
	Notes               string               `json:"notes"`
	EstimatedDeliveryAt *time.Time           `json:"estimated_delivery_at"`
	Items               []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory       []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// OrderItem is an immutable snapshot of one cart line at checkout time.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	MenuItemID  uint            `json:"menu_item_id" gorm:"not null"`
	Name        string          `json:"name"`         // snapshot name
	OptionNames string          `json:"option_names"` // snapshot of selected options, comma-joined
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"not null;type:decimal(10,2)"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"not null;type:decimal(10,2)"`
}

// OrderStatusHistory tracks every status change — audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
