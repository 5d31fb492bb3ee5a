package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"glanz-rental-backend/internal/domain"
)

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}

func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID int64, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}

func (m *MockOrderRepo) ApplyReturnTransitions(ctx context.Context, orderID int64, transitions []domain.ReturnTransition, actorID int64, lateFeeCents int64) error {
	args := m.Called(ctx, orderID, transitions, actorID, lateFeeCents)
	return args.Error(0)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockTaxProfileRepo struct {
	mock.Mock
}

func (m *MockTaxProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.TaxProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxProfile), args.Error(1)
}

func (m *MockTaxProfileRepo) GetOwnerProfile(ctx context.Context) (*domain.TaxProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxProfile), args.Error(1)
}

func (m *MockTaxProfileRepo) Upsert(ctx context.Context, profile *domain.TaxProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReturnFollowUpAlert(ctx context.Context, email, invoiceNo string, itemCount int, cause error) error {
	args := m.Called(ctx, email, invoiceNo, itemCount, cause)
	return args.Error(0)
}

func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, invoiceNo, customerName, endDate string) error {
	args := m.Called(ctx, email, invoiceNo, customerName, endDate)
	return args.Error(0)
}

type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) ResolveProfile(ctx context.Context, actorID int64) *domain.TaxProfile {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.TaxProfile)
}

func (m *MockTaxService) GetProfile(ctx context.Context, userID int64) (*domain.TaxProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxProfile), args.Error(1)
}

func (m *MockTaxService) SaveProfile(ctx context.Context, profile *domain.TaxProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
