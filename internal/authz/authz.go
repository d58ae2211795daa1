// Package authz holds the role rules applied to every collection. Handlers
// consult it before touching the store so violations are rejected at the
// point of action, not just hidden by the UI.
package authz

import (
	"github.com/google/uuid"

	"github.com/example/retailops/internal/models"
)

// Collection names used in the rule table.
const (
	Products  = "products"
	Customers = "customers"
	Orders    = "orders"
	Rewards   = "rewards"
)

// Actor is the signed-in identity a request acts as.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanView reports whether the actor may list or read the collection.
// Orders are viewable by anyone but scoped to own rows via OrderFilterOwner.
func CanView(actor Actor, collection string) bool {
	if collection == Customers {
		return actor.IsAdmin()
	}
	return true
}

// CanCreate reports whether the actor may insert into the collection.
// Any actor may place an order for themself; everything else is admin-only.
func CanCreate(actor Actor, collection string) bool {
	if collection == Orders {
		return true
	}
	return actor.IsAdmin()
}

// CanDelete reports whether the actor may delete from the collection.
func CanDelete(actor Actor, collection string) bool {
	return actor.IsAdmin()
}

// CanUpdate reports whether the actor may update the collection at all.
// For orders the row-level check in CanUpdateOrder still applies.
func CanUpdate(actor Actor, collection string) bool {
	if collection == Orders {
		return true
	}
	return actor.IsAdmin()
}

// CanUpdateOrder applies the row-level order rule: admins edit anything,
// customers only their own orders and only while still pending.
func CanUpdateOrder(actor Actor, order models.Order) bool {
	if actor.IsAdmin() {
		return true
	}
	return order.UserID == actor.ID && order.Status == models.StatusPending
}

// OrderFilterOwner returns the owner scope for order listings: nil for
// admins (all rows), the actor's own id otherwise.
func OrderFilterOwner(actor Actor) *uuid.UUID {
	if actor.IsAdmin() {
		return nil
	}
	id := actor.ID
	return &id
}
