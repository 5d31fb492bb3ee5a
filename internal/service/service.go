package service

import (
	"context"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/draft"
	"glanz-rental-backend/internal/reconcile"
)

type OrderService interface {
	// SubmitDraft validates the draft, computes totals with the actor's
	// resolved tax profile and persists the order (create or update,
	// depending on whether the draft was loaded from an existing order).
	// The draft is cleared on success.
	SubmitDraft(ctx context.Context, actorID int64, d *draft.Draft) (*domain.Order, error)
	LoadForEdit(ctx context.Context, orderID int64, d *draft.Draft) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListCustomerOrders(ctx context.Context, customerID int64, page, pageSize int32) ([]domain.Order, int32, error)
}

type ReturnService interface {
	SubmitReturn(ctx context.Context, actorID, orderID int64, decisions map[int64]reconcile.Decision, lateFeeCents int64) (*ReturnResult, error)
}

type TaxService interface {
	// ResolveProfile returns the tax profile to bill with for the given
	// actor: delegated submitters (staff/branch) resolve the account owner's
	// profile, falling back silently to their own. A nil result means no tax.
	ResolveProfile(ctx context.Context, actorID int64) *domain.TaxProfile
	GetProfile(ctx context.Context, userID int64) (*domain.TaxProfile, error)
	SaveProfile(ctx context.Context, profile *domain.TaxProfile) error
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, actorID int64, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
	ListCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}

type EmailService interface {
	SendReturnFollowUpAlert(ctx context.Context, email, invoiceNo string, itemCount int, cause error) error
	SendOverdueReminder(ctx context.Context, email, invoiceNo, customerName, endDate string) error
}
