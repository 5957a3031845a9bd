package services

import (
	"context"

	"github.com/google/uuid"

	"delivery-service/apperr"
	"delivery-service/models"
	repositories "delivery-service/repository"
)

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CustomerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) Create(ctx context.Context, req *CustomerRequest) (*models.Customer, error) {
	taken, err := s.customerRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.InvalidStatef("email %s is already in use", req.Email)
	}

	customer := &models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Active:  true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *CustomerRequest) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "customer %s not found", id)
	}

	if customer.Email != req.Email {
		taken, err := s.customerRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.InvalidStatef("email %s is already in use", req.Email)
		}
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) ToggleActive(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "customer %s not found", id)
	}
	customer.Active = !customer.Active
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "customer %s not found", id)
	}
	return customer, nil
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, notFoundOr(err, "customer with email %s not found", email)
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

func (s *CustomerService) ListActive(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.FindActive(ctx)
}

func (s *CustomerService) SearchByName(ctx context.Context, name string) ([]models.Customer, error) {
	return s.customerRepo.SearchByName(ctx, name)
}

func (s *CustomerService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.customerRepo.ExistsByEmail(ctx, email)
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "customer %s not found", id)
	}
	return s.customerRepo.Delete(ctx, id)
}
