// Package local is the offline persistence adapter: one JSON-serialized
// list per collection in flat files under a data directory. It exists so the
// app runs with no database at hand; it is not meant for production traffic.
package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/retailops/internal/models"
	"github.com/example/retailops/internal/store"
)

const (
	usersFile     = "users.json"
	productsFile  = "products.json"
	customersFile = "customers.json"
	ordersFile    = "orders.json"
	rewardsFile   = "rewards.json"
)

// Store persists every collection as a JSON file. All access is serialized
// behind a single mutex: reads and writes are whole-list operations.
type Store struct {
	dir string
	mu  sync.Mutex
}

var _ store.Store = (*Store)(nil)

// Open prepares the data directory and returns the adapter.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func readList[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func writeList[T any](path string, list []T) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate[T any](list []T, limit, offset int) []T {
	if limit <= 0 {
		return list
	}
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// storedUser re-exposes the password hash the API model hides from JSON.
// The users file is private to the adapter, so persisting the hash is the
// whole point.
type storedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func toStoredUser(u models.User) storedUser {
	return storedUser{User: u, PasswordHash: u.PasswordHash}
}

func (su storedUser) model() models.User {
	u := su.User
	u.PasswordHash = su.PasswordHash
	return u
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readList[storedUser](s.path(usersFile))
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return u.model(), nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readList[storedUser](s.path(usersFile))
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u.model(), nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readList[storedUser](s.path(usersFile))
	if err != nil {
		return err
	}

	// Email uniqueness is enforced here, under the lock, to match the
	// postgres adapter's unique index.
	for _, existing := range users {
		if existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}

	stamp(&user.BaseModel)
	users = append([]storedUser{toStoredUser(*user)}, users...)
	return writeList(s.path(usersFile), users)
}

// SaveUser replaces an existing user by id, or appends when the id is new.
// Mirrors gorm's Save upsert so the admin bootstrap works on both backends.
func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readList[storedUser](s.path(usersFile))
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].ID == user.ID {
			user.UpdatedAt = time.Now().UTC()
			users[i] = toStoredUser(*user)
			return writeList(s.path(usersFile), users)
		}
	}

	stamp(&user.BaseModel)
	users = append([]storedUser{toStoredUser(*user)}, users...)
	return writeList(s.path(usersFile), users)
}

func (s *Store) ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readList[models.Product](s.path(productsFile))
	if err != nil {
		return nil, 0, err
	}

	filtered := products[:0:0]
	for _, p := range products {
		if filter.Search != "" && !containsFold(p.Name, filter.Search) && !containsFold(p.SKU, filter.Search) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := int64(len(filtered))
	return paginate(filtered, filter.Limit, filter.Offset), total, nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readList[models.Product](s.path(productsFile))
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, store.ErrNotFound
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readList[models.Product](s.path(productsFile))
	if err != nil {
		return err
	}

	stamp(&product.BaseModel)
	products = append([]models.Product{*product}, products...)
	return writeList(s.path(productsFile), products)
}

func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, changes models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readList[models.Product](s.path(productsFile))
	if err != nil {
		return models.Product{}, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		p := &products[i]
		p.Name = changes.Name
		p.SKU = changes.SKU
		p.Category = changes.Category
		p.Price = changes.Price
		p.StockQuantity = changes.StockQuantity
		p.Description = changes.Description
		p.ImageURL = changes.ImageURL
		p.IsActive = changes.IsActive
		p.UpdatedAt = time.Now().UTC()
		if err := writeList(s.path(productsFile), products); err != nil {
			return models.Product{}, err
		}
		return *p, nil
	}
	return models.Product{}, store.ErrNotFound
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readList[models.Product](s.path(productsFile))
	if err != nil {
		return err
	}

	kept := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return store.ErrNotFound
	}
	return writeList(s.path(productsFile), kept)
}

func (s *Store) ListCustomers(ctx context.Context, filter store.CustomerFilter) ([]models.Customer, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := readList[models.Customer](s.path(customersFile))
	if err != nil {
		return nil, 0, err
	}

	filtered := customers[:0:0]
	for _, c := range customers {
		if filter.Search != "" && !containsFold(c.FullName, filter.Search) && !containsFold(c.Email, filter.Search) {
			continue
		}
		if filter.Tier != "" && c.LoyaltyTier != filter.Tier {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].JoinedAt.After(filtered[j].JoinedAt)
	})

	total := int64(len(filtered))
	return paginate(filtered, filter.Limit, filter.Offset), total, nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := readList[models.Customer](s.path(customersFile))
	if err != nil {
		return models.Customer{}, err
	}
	for _, c := range customers {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, store.ErrNotFound
}

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := readList[models.Customer](s.path(customersFile))
	if err != nil {
		return err
	}

	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	now := time.Now().UTC()
	customer.JoinedAt = now
	customer.UpdatedAt = now

	customers = append([]models.Customer{*customer}, customers...)
	return writeList(s.path(customersFile), customers)
}

func (s *Store) UpdateCustomer(ctx context.Context, id uuid.UUID, changes models.Customer) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := readList[models.Customer](s.path(customersFile))
	if err != nil {
		return models.Customer{}, err
	}

	for i := range customers {
		if customers[i].ID != id {
			continue
		}
		c := &customers[i]
		c.FullName = changes.FullName
		c.Email = changes.Email
		c.Phone = changes.Phone
		c.LoyaltyPoints = changes.LoyaltyPoints
		c.LoyaltyTier = changes.LoyaltyTier
		c.UpdatedAt = time.Now().UTC()
		if err := writeList(s.path(customersFile), customers); err != nil {
			return models.Customer{}, err
		}
		return *c, nil
	}
	return models.Customer{}, store.ErrNotFound
}

func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := readList[models.Customer](s.path(customersFile))
	if err != nil {
		return err
	}

	kept := customers[:0:0]
	for _, c := range customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(customers) {
		return store.ErrNotFound
	}
	return writeList(s.path(customersFile), kept)
}

func (s *Store) ListOrders(ctx context.Context, filter store.OrderFilter) ([]models.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := readList[models.Order](s.path(ordersFile))
	if err != nil {
		return nil, 0, err
	}

	filtered := orders[:0:0]
	for _, o := range orders {
		if filter.OwnerID != nil && o.UserID != *filter.OwnerID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		filtered = append(filtered, o)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := int64(len(filtered))
	page := paginate(filtered, filter.Limit, filter.Offset)
	if err := s.resolveCustomers(page); err != nil {
		return nil, 0, err
	}
	return page, total, nil
}

// resolveCustomers fills the Customer field for orders linked to the roster,
// standing in for the SQL join the postgres adapter gets for free.
func (s *Store) resolveCustomers(orders []models.Order) error {
	linked := false
	for _, o := range orders {
		if o.CustomerID != nil {
			linked = true
			break
		}
	}
	if !linked {
		return nil
	}

	customers, err := readList[models.Customer](s.path(customersFile))
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]models.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	for i := range orders {
		if orders[i].CustomerID == nil {
			continue
		}
		if c, ok := byID[*orders[i].CustomerID]; ok {
			customer := c
			orders[i].Customer = &customer
		}
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := readList[models.Order](s.path(ordersFile))
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			single := []models.Order{o}
			if err := s.resolveCustomers(single); err != nil {
				return models.Order{}, err
			}
			return single[0], nil
		}
	}
	return models.Order{}, store.ErrNotFound
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := readList[models.Order](s.path(ordersFile))
	if err != nil {
		return err
	}

	stamp(&order.BaseModel)
	orders = append([]models.Order{*order}, orders...)
	return writeList(s.path(ordersFile), orders)
}

func (s *Store) UpdateOrder(ctx context.Context, id uuid.UUID, changes models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := readList[models.Order](s.path(ordersFile))
	if err != nil {
		return models.Order{}, err
	}

	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		o := &orders[i]
		o.TotalAmount = changes.TotalAmount
		o.Status = changes.Status
		o.PaymentMethod = changes.PaymentMethod
		o.Notes = changes.Notes
		o.CustomerID = changes.CustomerID
		o.UpdatedAt = time.Now().UTC()
		if err := writeList(s.path(ordersFile), orders); err != nil {
			return models.Order{}, err
		}
		return *o, nil
	}
	return models.Order{}, store.ErrNotFound
}

func (s *Store) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := readList[models.Order](s.path(ordersFile))
	if err != nil {
		return err
	}

	kept := orders[:0:0]
	for _, o := range orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(orders) {
		return store.ErrNotFound
	}
	return writeList(s.path(ordersFile), kept)
}

func (s *Store) ListRewards(ctx context.Context) ([]models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rewards, err := readList[models.Reward](s.path(rewardsFile))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rewards, func(i, j int) bool {
		return rewards[i].PointsRequired < rewards[j].PointsRequired
	})
	return rewards, nil
}

func (s *Store) GetReward(ctx context.Context, id uuid.UUID) (models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rewards, err := readList[models.Reward](s.path(rewardsFile))
	if err != nil {
		return models.Reward{}, err
	}
	for _, r := range rewards {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reward{}, store.ErrNotFound
}

func (s *Store) CreateReward(ctx context.Context, reward *models.Reward) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rewards, err := readList[models.Reward](s.path(rewardsFile))
	if err != nil {
		return err
	}

	stamp(&reward.BaseModel)
	rewards = append([]models.Reward{*reward}, rewards...)
	return writeList(s.path(rewardsFile), rewards)
}

func (s *Store) UpdateReward(ctx context.Context, id uuid.UUID, changes models.Reward) (models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rewards, err := readList[models.Reward](s.path(rewardsFile))
	if err != nil {
		return models.Reward{}, err
	}

	for i := range rewards {
		if rewards[i].ID != id {
			continue
		}
		r := &rewards[i]
		r.Name = changes.Name
		r.Description = changes.Description
		r.RewardType = changes.RewardType
		r.RewardValue = changes.RewardValue
		r.PointsRequired = changes.PointsRequired
		r.IsActive = changes.IsActive
		r.UpdatedAt = time.Now().UTC()
		if err := writeList(s.path(rewardsFile), rewards); err != nil {
			return models.Reward{}, err
		}
		return *r, nil
	}
	return models.Reward{}, store.ErrNotFound
}

func (s *Store) DeleteReward(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rewards, err := readList[models.Reward](s.path(rewardsFile))
	if err != nil {
		return err
	}

	kept := rewards[:0:0]
	for _, r := range rewards {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(rewards) {
		return store.ErrNotFound
	}
	return writeList(s.path(rewardsFile), kept)
}

// stamp assigns a fresh id and creation timestamps; the local adapter has no
// ORM hooks to do it.
func stamp(b *models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
}
