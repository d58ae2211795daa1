package models

// Roles assignable to a signed-in user.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents an authenticated account. Registration always produces
// role=customer; the single admin account is seeded from config at startup.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"default:customer" json:"role"`
}
