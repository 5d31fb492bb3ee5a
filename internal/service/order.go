package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/draft"
	"glanz-rental-backend/internal/logger"
	"glanz-rental-backend/internal/reconcile"
	"glanz-rental-backend/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	orderRepo repository.OrderRepository
	taxSvc    TaxService
}

func NewOrderService(orderRepo repository.OrderRepository, taxSvc TaxService) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		taxSvc:    taxSvc,
	}
}

func (s *orderService) SubmitDraft(ctx context.Context, actorID int64, d *draft.Draft) (*domain.Order, error) {
	snap := d.Snapshot()

	if snap.CustomerID == 0 {
		return nil, ErrNoCustomer
	}
	if len(snap.Items) == 0 {
		return nil, ErrNoItems
	}
	if snap.EndDate == "" {
		return nil, ErrNoEndDate
	}
	days := reconcile.RentalDays(snap.StartDate, snap.EndDate)
	if days == 0 {
		return nil, ErrInvalidDateRange
	}

	items := snap.Items
	for i := range items {
		it := &items[i]
		if it.Quantity < 1 || it.PricePerDayCents < 0 {
			return nil, fmt.Errorf("%w: item %d", ErrInvalidItem, i)
		}
		expected := int64(it.Quantity) * it.PricePerDayCents
		if it.LineTotalCents == 0 {
			it.LineTotalCents = expected
		} else if it.LineTotalCents != expected {
			return nil, fmt.Errorf("%w: item %d line total %d != quantity*price %d", ErrInvalidItem, i, it.LineTotalCents, expected)
		}
		it.RentalDays = int32(days)
		if it.ReturnStatus == "" {
			it.ReturnStatus = domain.ReturnStatusPending
		}
	}

	profile := s.taxSvc.ResolveProfile(ctx, actorID)
	subtotal := reconcile.SubtotalCents(items)
	tax := reconcile.TaxAmountCents(subtotal, profile)
	total := reconcile.GrandTotalCents(subtotal, profile)

	invoiceNo := snap.InvoiceNo
	if invoiceNo == "" {
		invoiceNo = generateInvoiceNo()
	}

	order := &domain.Order{
		ID:            snap.OrderID,
		CustomerID:    snap.CustomerID,
		CustomerName:  snap.CustomerName,
		CustomerPhone: snap.CustomerPhone,
		InvoiceNo:     invoiceNo,
		StartDate:     snap.StartDate,
		EndDate:       snap.EndDate,
		RentalDays:    int32(days),
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    total,
		DepositCents:  snap.DepositCents,
		Status:        domain.OrderStatusActive,
		CreatedBy:     actorID,
		Items:         items,
	}

	if order.ID == 0 {
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return nil, err
		}
	} else {
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	// Submission succeeded; the working set is done with.
	d.Clear()

	logger.Info("Order submitted",
		"order_id", order.ID, "invoice_no", order.InvoiceNo,
		"items", len(order.Items), "total_cents", order.TotalCents, "actor_id", actorID)
	return order, nil
}

func (s *orderService) LoadForEdit(ctx context.Context, orderID int64, d *draft.Draft) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Duplicate fetch completions for the same order are dropped inside the
	// draft; nothing to handle here.
	d.LoadOrder(order)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *orderService) ListOrders(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return s.orderRepo.List(ctx, status, page, pageSize)
}

func (s *orderService) ListCustomerOrders(ctx context.Context, customerID int64, page, pageSize int32) ([]domain.Order, int32, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID, page, pageSize)
}

func generateInvoiceNo() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), id[:8])
}
