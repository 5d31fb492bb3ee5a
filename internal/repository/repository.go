package repository

import (
	"context"

	"glanz-rental-backend/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListByCustomer(ctx context.Context, customerID int64, page, pageSize int32) ([]domain.Order, int32, error)

	// ApplyReturnTransitions applies one batch of return-state changes in a
	// single transaction. The two-batch return protocol calls it twice; the
	// late fee must only accompany the first call.
	ApplyReturnTransitions(ctx context.Context, orderID int64, transitions []domain.ReturnTransition, actorID int64, lateFeeCents int64) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Customer, int32, error)
	Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type TaxProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.TaxProfile, error)
	// GetOwnerProfile looks up the top-level (account owner) profile by role
	// marker. Delegated submitters bill with this profile.
	GetOwnerProfile(ctx context.Context) (*domain.TaxProfile, error)
	Upsert(ctx context.Context, profile *domain.TaxProfile) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}
