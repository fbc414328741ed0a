package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle of a payment attempt
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment is created in pending state alongside its order at checkout.
// Processing is only permitted from pending; refunding only from completed.
type Payment struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	OrderID       uint            `json:"order_id" gorm:"not null;uniqueIndex"`
	Amount        decimal.Decimal `json:"amount" gorm:"not null;type:decimal(10,2)"`
	Method        string          `json:"method"`
	Status        PaymentStatus   `json:"status" gorm:"not null;default:'pending'"`
	TransactionID string          `json:"transaction_id"`
	FailureReason string          `json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
