package services

import (
	"context"

	"github.com/google/uuid"

	"delivery-service/apperr"
	"delivery-service/models"
	repositories "delivery-service/repository"
)

type ProductRequest struct {
	RestaurantID    uuid.UUID `json:"restaurant_id" binding:"required"`
	Name            string    `json:"name" binding:"required"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Price           int64     `json:"price"`
	ImageURL        string    `json:"image_url"`
	Available       bool      `json:"available"`
	PrepTimeMinutes *int      `json:"prep_time_minutes"`
}

type ProductService struct {
	productRepo    repositories.ProductRepository
	restaurantRepo repositories.RestaurantRepository
}

func NewProductService(productRepo repositories.ProductRepository, restaurantRepo repositories.RestaurantRepository) *ProductService {
	return &ProductService{productRepo: productRepo, restaurantRepo: restaurantRepo}
}

func (s *ProductService) Create(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	if req.Price <= 0 {
		return nil, apperr.InvalidArgumentf("price must be positive")
	}
	if _, err := s.restaurantRepo.FindByID(ctx, req.RestaurantID); err != nil {
		return nil, notFoundOr(err, "restaurant %s not found", req.RestaurantID)
	}

	product := &models.Product{
		RestaurantID:    req.RestaurantID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		Active:          true,
		Available:       req.Available,
		PrepTimeMinutes: req.PrepTimeMinutes,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if req.Price <= 0 {
		return nil, apperr.InvalidArgumentf("price must be positive")
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product %s not found", id)
	}
	if product.RestaurantID != req.RestaurantID {
		if _, err := s.restaurantRepo.FindByID(ctx, req.RestaurantID); err != nil {
			return nil, notFoundOr(err, "restaurant %s not found", req.RestaurantID)
		}
	}

	product.RestaurantID = req.RestaurantID
	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.ImageURL = req.ImageURL
	product.Available = req.Available
	product.PrepTimeMinutes = req.PrepTimeMinutes
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ToggleActive(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product %s not found", id)
	}
	product.Active = !product.Active
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ToggleAvailability(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product %s not found", id)
	}
	product.Available = !product.Available
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ActivatePromotion puts the product on promotion at the given price. The
// promotional price only affects catalog reads; order pricing keeps using the
// base price.
func (s *ProductService) ActivatePromotion(ctx context.Context, id uuid.UUID, promoPrice int64) (*models.Product, error) {
	if promoPrice <= 0 {
		return nil, apperr.InvalidArgumentf("promotional price must be positive")
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product %s not found", id)
	}
	product.OnPromotion = true
	product.PromoPrice = &promoPrice
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeactivatePromotion(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product %s not found", id)
	}
	product.OnPromotion = false
	product.PromoPrice = nil
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product %s not found", id)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *ProductService) ListActive(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.FindActive(ctx)
}

func (s *ProductService) ListAvailable(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.FindAvailable(ctx)
}

func (s *ProductService) ListOnPromotion(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.FindOnPromotion(ctx)
}

func (s *ProductService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error) {
	return s.productRepo.FindByRestaurant(ctx, restaurantID)
}

func (s *ProductService) ListAvailableByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error) {
	return s.productRepo.FindAvailableByRestaurant(ctx, restaurantID)
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.productRepo.FindByCategory(ctx, category)
}

func (s *ProductService) ListByPriceRange(ctx context.Context, min, max int64) ([]models.Product, error) {
	if min < 0 || max < min {
		return nil, apperr.InvalidArgumentf("invalid price range %d-%d", min, max)
	}
	return s.productRepo.FindByPriceBetween(ctx, min, max)
}

func (s *ProductService) ListByPriceAtMost(ctx context.Context, price int64) ([]models.Product, error) {
	return s.productRepo.FindByPriceAtMost(ctx, price)
}

func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.ListCategories(ctx)
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "product %s not found", id)
	}
	return s.productRepo.Delete(ctx, id)
}
