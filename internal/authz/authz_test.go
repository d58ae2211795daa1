package authz

import (
	"testing"

	"github.com/google/uuid"

	"github.com/example/retailops/internal/models"
)

func TestRoleRulesPerCollection(t *testing.T) {
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	customer := Actor{ID: uuid.New(), Role: models.RoleCustomer}

	cases := []struct {
		collection string
		actor      Actor
		view       bool
		create     bool
		update     bool
		del        bool
	}{
		{Products, admin, true, true, true, true},
		{Products, customer, true, false, false, false},
		{Customers, admin, true, true, true, true},
		{Customers, customer, false, false, false, false},
		{Orders, admin, true, true, true, true},
		{Orders, customer, true, true, true, false},
		{Rewards, admin, true, true, true, true},
		{Rewards, customer, true, false, false, false},
	}

	for _, tc := range cases {
		if got := CanView(tc.actor, tc.collection); got != tc.view {
			t.Errorf("CanView(%s, %s) = %v, want %v", tc.actor.Role, tc.collection, got, tc.view)
		}
		if got := CanCreate(tc.actor, tc.collection); got != tc.create {
			t.Errorf("CanCreate(%s, %s) = %v, want %v", tc.actor.Role, tc.collection, got, tc.create)
		}
		if got := CanUpdate(tc.actor, tc.collection); got != tc.update {
			t.Errorf("CanUpdate(%s, %s) = %v, want %v", tc.actor.Role, tc.collection, got, tc.update)
		}
		if got := CanDelete(tc.actor, tc.collection); got != tc.del {
			t.Errorf("CanDelete(%s, %s) = %v, want %v", tc.actor.Role, tc.collection, got, tc.del)
		}
	}
}

func TestCanUpdateOrderRowLevel(t *testing.T) {
	owner := Actor{ID: uuid.New(), Role: models.RoleCustomer}
	stranger := Actor{ID: uuid.New(), Role: models.RoleCustomer}
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	pending := models.Order{UserID: owner.ID, Status: models.StatusPending}
	completed := models.Order{UserID: owner.ID, Status: models.StatusCompleted}

	if !CanUpdateOrder(owner, pending) {
		t.Error("owner should edit their own pending order")
	}
	if CanUpdateOrder(owner, completed) {
		t.Error("owner must not edit a non-pending order")
	}
	if CanUpdateOrder(stranger, pending) {
		t.Error("stranger must not edit a foreign order")
	}
	if !CanUpdateOrder(admin, completed) {
		t.Error("admin should edit any order")
	}
}

func TestOrderFilterOwner(t *testing.T) {
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	customer := Actor{ID: uuid.New(), Role: models.RoleCustomer}

	if OrderFilterOwner(admin) != nil {
		t.Error("admin listing should not be owner scoped")
	}

	owner := OrderFilterOwner(customer)
	if owner == nil || *owner != customer.ID {
		t.Errorf("customer listing should be scoped to own id, got %v", owner)
	}
}
