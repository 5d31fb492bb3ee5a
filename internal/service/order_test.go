package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/draft"
)

func enabledProfile(rate float64) *domain.TaxProfile {
	enabled := true
	return &domain.TaxProfile{TaxEnabled: &enabled, TaxRatePercent: rate}
}

func validDraft() *draft.Draft {
	d := draft.New()
	d.SetCustomer(7, "Ada", "555-0100")
	d.SetStartDate("2025-05-01T00:00:00Z")
	d.SetEndDate("2025-05-03T00:00:00Z")
	d.AddItem(domain.LineItem{ProductName: "drill", Quantity: 2, PricePerDayCents: 100})
	d.AddItem(domain.LineItem{ProductName: "saw", Quantity: 1, PricePerDayCents: 200})
	return d
}

func TestOrderService_SubmitDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("Success creates order with reconciled totals", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		taxSvc := new(MockTaxService)
		svc := NewOrderService(orderRepo, taxSvc)

		taxSvc.On("ResolveProfile", mock.Anything, int64(1)).Return(enabledProfile(5))
		orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Order).ID = 99
			}).Return(nil)

		d := validDraft()
		order, err := svc.SubmitDraft(ctx, 1, d)
		require.NoError(t, err)
		require.NotNil(t, order)

		assert.Equal(t, int64(99), order.ID)
		assert.Equal(t, int32(2), order.RentalDays)
		assert.Equal(t, int64(400), order.SubtotalCents)
		assert.Equal(t, int64(20), order.TaxCents)
		assert.Equal(t, int64(420), order.TotalCents)
		assert.Equal(t, domain.OrderStatusActive, order.Status)
		assert.Equal(t, int64(1), order.CreatedBy)
		assert.True(t, strings.HasPrefix(order.InvoiceNo, "INV-"))

		// Line totals were filled in and statuses defaulted.
		for _, it := range order.Items {
			assert.Equal(t, int64(it.Quantity)*it.PricePerDayCents, it.LineTotalCents)
			assert.Equal(t, domain.ReturnStatusPending, it.ReturnStatus)
			assert.Equal(t, int32(2), it.RentalDays)
		}

		// The working set is cleared after a successful submission.
		snap := d.Snapshot()
		assert.Zero(t, snap.CustomerID)
		assert.Empty(t, snap.Items)

		orderRepo.AssertExpectations(t)
	})

	t.Run("Loaded draft updates instead of creating", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		taxSvc := new(MockTaxService)
		svc := NewOrderService(orderRepo, taxSvc)

		existing := &domain.Order{
			ID:         42,
			CustomerID: 7,
			StartDate:  "2025-05-01T00:00:00Z",
			EndDate:    "2025-05-03T00:00:00Z",
			InvoiceNo:  "INV-EXISTING",
			Items: []domain.LineItem{
				{ID: 1, ProductName: "drill", Quantity: 1, PricePerDayCents: 100, LineTotalCents: 100},
			},
		}

		d := draft.New()
		require.True(t, d.LoadOrder(existing))

		taxSvc.On("ResolveProfile", mock.Anything, int64(1)).Return(nil)
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

		order, err := svc.SubmitDraft(ctx, 1, d)
		require.NoError(t, err)
		assert.Equal(t, int64(42), order.ID)
		assert.Equal(t, "INV-EXISTING", order.InvoiceNo)

		orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		orderRepo.AssertExpectations(t)
	})

	t.Run("No customer", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepo), new(MockTaxService))

		d := draft.New()
		d.AddItem(domain.LineItem{ProductName: "drill", Quantity: 1, PricePerDayCents: 100})

		_, err := svc.SubmitDraft(ctx, 1, d)
		assert.ErrorIs(t, err, ErrNoCustomer)
	})

	t.Run("No items", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepo), new(MockTaxService))

		d := draft.New()
		d.SetCustomer(7, "Ada", "")

		_, err := svc.SubmitDraft(ctx, 1, d)
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("No end date", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepo), new(MockTaxService))

		d := validDraft()
		d.SetEndDate("")

		_, err := svc.SubmitDraft(ctx, 1, d)
		assert.ErrorIs(t, err, ErrNoEndDate)
	})

	t.Run("Unparseable dates", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepo), new(MockTaxService))

		d := validDraft()
		d.SetStartDate("not-a-date")

		_, err := svc.SubmitDraft(ctx, 1, d)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepo), new(MockTaxService))

		d := validDraft()
		d.AddItem(domain.LineItem{ProductName: "broken", Quantity: 0, PricePerDayCents: 100})

		_, err := svc.SubmitDraft(ctx, 1, d)
		assert.ErrorIs(t, err, ErrInvalidItem)
	})

	t.Run("Line total mismatch", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepo), new(MockTaxService))

		d := validDraft()
		d.AddItem(domain.LineItem{ProductName: "off", Quantity: 2, PricePerDayCents: 100, LineTotalCents: 999})

		_, err := svc.SubmitDraft(ctx, 1, d)
		assert.ErrorIs(t, err, ErrInvalidItem)
	})

	t.Run("Repository failure leaves the draft intact", func(t *testing.T) {
		orderRepo := new(MockOrderRepo)
		taxSvc := new(MockTaxService)
		svc := NewOrderService(orderRepo, taxSvc)

		taxSvc.On("ResolveProfile", mock.Anything, int64(1)).Return(nil)
		orderRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		d := validDraft()
		_, err := svc.SubmitDraft(ctx, 1, d)
		assert.Error(t, err)

		snap := d.Snapshot()
		assert.Equal(t, int64(7), snap.CustomerID)
		assert.Len(t, snap.Items, 2)
	})
}

func TestOrderService_LoadForEdit(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepo)
	svc := NewOrderService(orderRepo, new(MockTaxService))

	existing := &domain.Order{
		ID: 42,
		Items: []domain.LineItem{
			{ID: 1, ProductName: "drill", Quantity: 1},
		},
	}
	orderRepo.On("GetByID", ctx, int64(42)).Return(existing, nil)

	d := draft.New()
	order, err := svc.LoadForEdit(ctx, 42, d)
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Len(t, d.Items(), 1)

	// A duplicate fetch completion does not disturb the draft.
	_, err = svc.LoadForEdit(ctx, 42, d)
	require.NoError(t, err)
	assert.Len(t, d.Items(), 1)
}

func TestGenerateInvoiceNo(t *testing.T) {
	a := generateInvoiceNo()
	b := generateInvoiceNo()

	assert.True(t, strings.HasPrefix(a, "INV-"))
	assert.NotEqual(t, a, b)
}
