// Package store defines the persistence contract shared by the postgres and
// local adapters. One implementation is selected at startup and injected
// into every handler; callers never branch on the active backend.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/example/retailops/internal/models"
)

// ErrNotFound is returned by update/delete/get operations that reference an
// identifier no record carries.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned by create operations that collide with a unique
// field, such as a user email already registered by a concurrent request.
var ErrDuplicate = errors.New("duplicate record")

// ProductFilter narrows product listings. Zero values mean "no restriction";
// Limit 0 disables pagination.
type ProductFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// CustomerFilter narrows customer listings.
type CustomerFilter struct {
	Search string
	Tier   string
	Limit  int
	Offset int
}

// OrderFilter narrows order listings. OwnerID scopes to a single user's
// orders; nil returns every order (admin view).
type OrderFilter struct {
	OwnerID *uuid.UUID
	Status  string
	Limit   int
	Offset  int
}

// UserStore persists authentication accounts.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
}

// ProductStore persists the product catalog, listed newest-first.
type ProductStore interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, changes models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CustomerStore persists the loyalty roster, listed by join date descending.
type CustomerStore interface {
	ListCustomers(ctx context.Context, filter CustomerFilter) ([]models.Customer, int64, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	UpdateCustomer(ctx context.Context, id uuid.UUID, changes models.Customer) (models.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

// OrderStore persists orders newest-first with the linked roster customer
// resolved on reads. UserID is never touched by updates.
type OrderStore interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, id uuid.UUID, changes models.Order) (models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

// RewardStore persists the loyalty-reward catalog, listed by points required
// ascending.
type RewardStore interface {
	ListRewards(ctx context.Context) ([]models.Reward, error)
	GetReward(ctx context.Context, id uuid.UUID) (models.Reward, error)
	CreateReward(ctx context.Context, reward *models.Reward) error
	UpdateReward(ctx context.Context, id uuid.UUID, changes models.Reward) (models.Reward, error)
	DeleteReward(ctx context.Context, id uuid.UUID) error
}

// Store is the full persistence surface handlers depend on.
type Store interface {
	UserStore
	ProductStore
	CustomerStore
	OrderStore
	RewardStore
}
