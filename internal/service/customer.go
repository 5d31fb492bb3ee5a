package service

import (
	"context"
	"errors"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(ctx context.Context, actorID int64, c *domain.Customer) error {
	if c.Name == "" {
		return errors.New("customer name is required")
	}
	c.CreatedBy = actorID
	return s.customerRepo.Create(ctx, c)
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return errors.New("customer name is required")
	}
	return s.customerRepo.Update(ctx, c)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	if query != "" {
		return s.customerRepo.Search(ctx, query, page, pageSize)
	}
	return s.customerRepo.List(ctx, page, pageSize)
}
