package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loyalty tiers, ordinal: Bronze < Silver < Gold < Platinum.
const (
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

// LoyaltyTiers lists every valid tier in ascending order.
var LoyaltyTiers = []string{TierBronze, TierSilver, TierGold, TierPlatinum}

// ValidTier reports whether tier is one of the known loyalty tiers.
func ValidTier(tier string) bool {
	for _, t := range LoyaltyTiers {
		if t == tier {
			return true
		}
	}
	return false
}

// Customer is a loyalty-program member. Visible and mutable by admins only.
type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `gorm:"index" json:"email"`
	Phone         string    `json:"phone"`
	LoyaltyPoints int       `json:"loyalty_points"`
	LoyaltyTier   string    `gorm:"default:Bronze" json:"loyalty_tier"`
	TotalSpent    float64   `json:"total_spent"`
	JoinedAt      time.Time `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate ensures UUIDs are generated for new records.
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
