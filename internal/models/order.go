package models

import "github.com/google/uuid"

// Order lifecycle states.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}

// ValidStatus reports whether status is a known order status.
func ValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order belongs to the user who placed it. UserID is immutable after
// creation; CustomerID is an optional admin-assigned link to the roster.
type Order struct {
	BaseModel
	UserID        uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	CustomerID    *uuid.UUID `gorm:"type:uuid" json:"customer_id"`
	Customer      *Customer  `json:"customer,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	Status        string     `gorm:"default:pending" json:"status"`
	PaymentMethod string     `json:"payment_method"`
	Notes         string     `json:"notes"`
}
