package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"delivery-service/models"
)

// OrderRepository defines the interface for order data access. Transition
// operations load the order with a row lock inside Transaction so concurrent
// status changes on the same order serialize at the database.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByNumber(ctx context.Context, number string) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	FindByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Order, error)
	FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	FindActive(ctx context.Context) ([]models.Order, error)
	FindByPlacedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	CountActiveByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error)
	SalesTotalBetween(ctx context.Context, from, to time.Time) (int64, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Transaction runs fn inside a database transaction; the repository passed
	// to fn shares that transaction.
	Transaction(ctx context.Context, fn func(repo OrderRepository) error) error
	// FindByIDForUpdate loads the order with a FOR UPDATE row lock. Only
	// meaningful inside Transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists the order and its items in a single insert; gorm cascades
// the Items association, so a failed create leaves no partial rows.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "order_number = ?", number).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("placed_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("placed_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("restaurant_id = ?", restaurantID).
		Order("placed_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", status).
		Order("placed_at DESC").
		Find(&orders).Error
	return orders, err
}

// FindActive returns non-terminal orders oldest first, the kitchen dashboard
// ordering.
func (r *GormOrderRepository) FindActive(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status IN ?", models.ActiveStatuses()).
		Order("placed_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindByPlacedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("placed_at BETWEEN ? AND ?", from, to).
		Order("placed_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) CountActiveByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("restaurant_id = ? AND status != ?", restaurantID, models.StatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) SalesTotalBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("placed_at BETWEEN ? AND ? AND status != ?", from, to, models.StatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

// Update saves the order and replaces its items so removed lines are deleted.
func (r *GormOrderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id).Error
}

func (r *GormOrderRepository) Transaction(ctx context.Context, fn func(repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormOrderRepository{db: tx})
	})
}

func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
