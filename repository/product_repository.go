package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"delivery-service/models"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindActive(ctx context.Context) ([]models.Product, error)
	FindAvailable(ctx context.Context) ([]models.Product, error)
	FindOnPromotion(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error)
	FindAvailableByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	FindByPriceBetween(ctx context.Context, min, max int64) ([]models.Product, error)
	FindByPriceAtMost(ctx context.Context, price int64) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindAvailable(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("active = ? AND available = ?", true, true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindOnPromotion(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("on_promotion = ? AND available = ?", true, true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindAvailableByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND active = ? AND available = ?", restaurantID, true, true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ? AND available = ?", category, true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByPriceBetween(ctx context.Context, min, max int64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("price BETWEEN ? AND ? AND available = ?", min, max, true).
		Order("price ASC").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByPriceAtMost(ctx context.Context, price int64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("price <= ? AND available = ?", price, true).
		Order("price ASC").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
