package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/retailops/internal/models"
	"github.com/example/retailops/internal/store"
)

var _ store.Store = (*Store)(nil)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrDuplicate
	}
	return err
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, translate(err)
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return user, translate(err)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *Store) ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if search := filter.Search; search != "" {
		q := "%" + search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", q, q)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	return product, translate(err)
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, changes models.Product) (models.Product, error) {
	res := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Select("name", "sku", "category", "price", "stock_quantity", "description", "image_url", "is_active").
		Updates(changes)
	if res.Error != nil {
		return models.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Product{}, store.ErrNotFound
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListCustomers(ctx context.Context, filter store.CustomerFilter) ([]models.Customer, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Customer{})

	if search := filter.Search; search != "" {
		q := "%" + search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", q, q)
	}
	if filter.Tier != "" {
		query = query.Where("loyalty_tier = ?", filter.Tier)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Order("joined_at desc").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	return customer, translate(err)
}

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return s.db.WithContext(ctx).Create(customer).Error
}

// UpdateCustomer leaves total_spent alone: spend is accumulated externally,
// never set through the roster form.
func (s *Store) UpdateCustomer(ctx context.Context, id uuid.UUID, changes models.Customer) (models.Customer, error) {
	res := s.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", id).
		Select("full_name", "email", "phone", "loyalty_points", "loyalty_tier").
		Updates(changes)
	if res.Error != nil {
		return models.Customer{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Customer{}, store.ErrNotFound
	}
	return s.GetCustomer(ctx, id)
}

func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context, filter store.OrderFilter) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})

	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", *filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Preload("Customer").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Customer").First(&order, "id = ?", id).Error
	return order, translate(err)
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// UpdateOrder never writes user_id: order ownership is immutable.
func (s *Store) UpdateOrder(ctx context.Context, id uuid.UUID, changes models.Order) (models.Order, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Select("total_amount", "status", "payment_method", "notes", "customer_id").
		Updates(changes)
	if res.Error != nil {
		return models.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Order{}, store.ErrNotFound
	}
	return s.GetOrder(ctx, id)
}

func (s *Store) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListRewards(ctx context.Context) ([]models.Reward, error) {
	var rewards []models.Reward
	err := s.db.WithContext(ctx).Order("points_required asc").Find(&rewards).Error
	return rewards, err
}

func (s *Store) GetReward(ctx context.Context, id uuid.UUID) (models.Reward, error) {
	var reward models.Reward
	err := s.db.WithContext(ctx).First(&reward, "id = ?", id).Error
	return reward, translate(err)
}

func (s *Store) CreateReward(ctx context.Context, reward *models.Reward) error {
	return s.db.WithContext(ctx).Create(reward).Error
}

func (s *Store) UpdateReward(ctx context.Context, id uuid.UUID, changes models.Reward) (models.Reward, error) {
	res := s.db.WithContext(ctx).Model(&models.Reward{}).
		Where("id = ?", id).
		Select("name", "description", "reward_type", "reward_value", "points_required", "is_active").
		Updates(changes)
	if res.Error != nil {
		return models.Reward{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Reward{}, store.ErrNotFound
	}
	return s.GetReward(ctx, id)
}

func (s *Store) DeleteReward(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Reward{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
