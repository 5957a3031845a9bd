package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"delivery-service/models"
)

// RestaurantRepository defines the interface for restaurant data access
type RestaurantRepository interface {
	FindAll(ctx context.Context) ([]models.Restaurant, error)
	FindActive(ctx context.Context) ([]models.Restaurant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	FindByCategory(ctx context.Context, category string) ([]models.Restaurant, error)
	SearchByName(ctx context.Context, name string) ([]models.Restaurant, error)
	FindByDeliveryFeeBetween(ctx context.Context, min, max int64) ([]models.Restaurant, error)
	FindByDeliveryFeeAtMost(ctx context.Context, fee int64) ([]models.Restaurant, error)
	ListCategories(ctx context.Context) ([]string, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, restaurant *models.Restaurant) error
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormRestaurantRepository implements RestaurantRepository using GORM
type GormRestaurantRepository struct {
	db *gorm.DB
}

func NewGormRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

func (r *GormRestaurantRepository) FindAll(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).Order("name ASC").Find(&restaurants).Error
	return restaurants, err
}

func (r *GormRestaurantRepository) FindActive(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&restaurants).Error
	return restaurants, err
}

func (r *GormRestaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *GormRestaurantRepository) FindByCategory(ctx context.Context, category string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Where("category = ? AND active = ?", category, true).
		Order("name ASC").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *GormRestaurantRepository) SearchByName(ctx context.Context, name string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? AND active = ?", "%"+name+"%", true).
		Order("name ASC").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *GormRestaurantRepository) FindByDeliveryFeeBetween(ctx context.Context, min, max int64) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Where("delivery_fee BETWEEN ? AND ? AND active = ?", min, max, true).
		Order("delivery_fee ASC").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *GormRestaurantRepository) FindByDeliveryFeeAtMost(ctx context.Context, fee int64) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Where("delivery_fee <= ? AND active = ?", fee, true).
		Order("delivery_fee ASC").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *GormRestaurantRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *GormRestaurantRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *GormRestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *GormRestaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

func (r *GormRestaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Restaurant{}, "id = ?", id).Error
}
