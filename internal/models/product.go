package models

// Product is a catalog entry. Mutable by admins only.
type Product struct {
	BaseModel
	Name          string  `json:"name"`
	SKU           string  `gorm:"uniqueIndex" json:"sku"`
	Category      string  `gorm:"index" json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`
}
