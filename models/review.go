package models

import "time"

type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	OrderID      *uint     `json:"order_id"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      string    `json:"comment"`
	IsApproved   bool      `json:"is_approved" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
