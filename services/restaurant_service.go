package services

import (
	"context"

	"github.com/google/uuid"

	"delivery-service/apperr"
	"delivery-service/models"
	repositories "delivery-service/repository"
)

type RestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	DeliveryFee int64  `json:"delivery_fee"`
	Rating      *int64 `json:"rating"`
}

type RestaurantService struct {
	restaurantRepo repositories.RestaurantRepository
}

func NewRestaurantService(restaurantRepo repositories.RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurantRepo: restaurantRepo}
}

func (s *RestaurantService) Create(ctx context.Context, req *RestaurantRequest) (*models.Restaurant, error) {
	if req.DeliveryFee < 0 {
		return nil, apperr.InvalidArgumentf("delivery fee must not be negative")
	}
	taken, err := s.restaurantRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.InvalidStatef("restaurant %q already exists", req.Name)
	}

	restaurant := &models.Restaurant{
		Name:        req.Name,
		Category:    req.Category,
		Address:     req.Address,
		Phone:       req.Phone,
		DeliveryFee: req.DeliveryFee,
		Rating:      req.Rating,
		Active:      true,
	}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *RestaurantService) Update(ctx context.Context, id uuid.UUID, req *RestaurantRequest) (*models.Restaurant, error) {
	if req.DeliveryFee < 0 {
		return nil, apperr.InvalidArgumentf("delivery fee must not be negative")
	}
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "restaurant %s not found", id)
	}

	restaurant.Name = req.Name
	restaurant.Category = req.Category
	restaurant.Address = req.Address
	restaurant.Phone = req.Phone
	restaurant.DeliveryFee = req.DeliveryFee
	restaurant.Rating = req.Rating
	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *RestaurantService) ToggleActive(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "restaurant %s not found", id)
	}
	restaurant.Active = !restaurant.Active
	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *RestaurantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "restaurant %s not found", id)
	}
	return restaurant, nil
}

func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	return s.restaurantRepo.FindAll(ctx)
}

func (s *RestaurantService) ListActive(ctx context.Context) ([]models.Restaurant, error) {
	return s.restaurantRepo.FindActive(ctx)
}

func (s *RestaurantService) ListByCategory(ctx context.Context, category string) ([]models.Restaurant, error) {
	return s.restaurantRepo.FindByCategory(ctx, category)
}

func (s *RestaurantService) SearchByName(ctx context.Context, name string) ([]models.Restaurant, error) {
	return s.restaurantRepo.SearchByName(ctx, name)
}

func (s *RestaurantService) ListByDeliveryFeeRange(ctx context.Context, min, max int64) ([]models.Restaurant, error) {
	if min < 0 || max < min {
		return nil, apperr.InvalidArgumentf("invalid delivery fee range %d-%d", min, max)
	}
	return s.restaurantRepo.FindByDeliveryFeeBetween(ctx, min, max)
}

func (s *RestaurantService) ListByDeliveryFeeAtMost(ctx context.Context, fee int64) ([]models.Restaurant, error) {
	return s.restaurantRepo.FindByDeliveryFeeAtMost(ctx, fee)
}

func (s *RestaurantService) ListCategories(ctx context.Context) ([]string, error) {
	return s.restaurantRepo.ListCategories(ctx)
}

func (s *RestaurantService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.restaurantRepo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "restaurant %s not found", id)
	}
	return s.restaurantRepo.Delete(ctx, id)
}
