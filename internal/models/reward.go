package models

// Reward value semantics depend on the type: a percentage for
// discount_percent, a currency amount for discount_fixed, unused otherwise.
const (
	RewardDiscountPercent = "discount_percent"
	RewardDiscountFixed   = "discount_fixed"
	RewardFreeProduct     = "free_product"
	RewardFreeShipping    = "free_shipping"
)

// RewardTypes lists every valid reward type.
var RewardTypes = []string{RewardDiscountPercent, RewardDiscountFixed, RewardFreeProduct, RewardFreeShipping}

// ValidRewardType reports whether t is a known reward type.
func ValidRewardType(t string) bool {
	for _, rt := range RewardTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Reward is a redeemable loyalty-catalog entry. Mutable by admins only.
type Reward struct {
	BaseModel
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	RewardType     string  `json:"reward_type"`
	RewardValue    float64 `json:"reward_value"`
	PointsRequired int     `json:"points_required"`
	IsActive       bool    `gorm:"default:true" json:"is_active"`
}
