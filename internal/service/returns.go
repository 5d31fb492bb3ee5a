package service

import (
	"context"
	"fmt"
	"time"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/logger"
	"glanz-rental-backend/internal/reconcile"
	"glanz-rental-backend/internal/repository"
)

// ReturnResult reports what a return submission persisted. Warning is set
// (as a *MissingItemsError) when the deferred batch failed after the first
// one committed.
type ReturnResult struct {
	OrderID         int64                     `json:"order_id"`
	Applied         int                       `json:"applied"`
	DeferredApplied int                       `json:"deferred_applied"`
	FailedDeferred  []domain.ReturnTransition `json:"failed_deferred,omitempty"`
	Warning         error                     `json:"-"`
}

type returnService struct {
	orderRepo    repository.OrderRepository
	noteRepo     repository.NotificationRepository
	emailSvc     EmailService
	opsEmail     string
	applyTimeout time.Duration
}

func NewReturnService(
	orderRepo repository.OrderRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	opsEmail string,
	applyTimeout time.Duration,
) ReturnService {
	if applyTimeout <= 0 {
		applyTimeout = 30 * time.Second
	}
	return &returnService{
		orderRepo:    orderRepo,
		noteRepo:     noteRepo,
		emailSvc:     emailSvc,
		opsEmail:     opsEmail,
		applyTimeout: applyTimeout,
	}
}

// SubmitReturn runs the two-batch return protocol. Batch 1 (returns,
// whole-missing, reversals, plus the late fee) is a hard failure: nothing is
// cleared and the caller may retry. Batch 2 (missing remainders of partial
// returns) is issued only after batch 1 has been confirmed persisted; its
// failure leaves batch 1 committed and is surfaced as a soft warning. The
// late fee is never resubmitted with batch 2.
func (s *returnService) SubmitReturn(ctx context.Context, actorID, orderID int64, decisions map[int64]reconcile.Decision, lateFeeCents int64) (*ReturnResult, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetching order %d: %w", orderID, err)
	}

	plan := reconcile.BuildPlan(order.Items, decisions, lateFeeCents, time.Now())
	if plan.Empty() {
		return nil, ErrNothingToReturn
	}

	batchCtx, cancel := context.WithTimeout(ctx, s.applyTimeout)
	defer cancel()
	if err := s.orderRepo.ApplyReturnTransitions(batchCtx, orderID, plan.Immediate, actorID, plan.LateFeeCents); err != nil {
		return nil, fmt.Errorf("applying return transitions for order %d: %w", orderID, err)
	}

	res := &ReturnResult{OrderID: orderID, Applied: len(plan.Immediate)}
	if len(plan.Deferred) == 0 {
		return res, nil
	}

	deferredCtx, cancelDeferred := context.WithTimeout(ctx, s.applyTimeout)
	defer cancelDeferred()
	if err := s.orderRepo.ApplyReturnTransitions(deferredCtx, orderID, plan.Deferred, actorID, 0); err != nil {
		s.reportDeferredFailure(order, actorID, len(plan.Deferred), err)
		res.FailedDeferred = plan.Deferred
		res.Warning = &MissingItemsError{OrderID: orderID, Transitions: len(plan.Deferred), Err: err}
		return res, nil
	}
	res.DeferredApplied = len(plan.Deferred)
	return res, nil
}

// reportDeferredFailure alerts the operator that manual follow-up is needed.
// Alerting is best-effort; the warning on the result is the contract.
func (s *returnService) reportDeferredFailure(order *domain.Order, actorID int64, count int, cause error) {
	logger.Error("Missing-item batch failed after returns committed",
		"order_id", order.ID, "invoice_no", order.InvoiceNo, "transitions", count, "error", cause)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	note := &domain.Notification{
		UserID:  actorID,
		Title:   "Missing items not recorded",
		Message: fmt.Sprintf("Returns for invoice %s were saved, but %d missing-item record(s) were not. Please record them manually.", order.InvoiceNo, count),
		Attributes: map[string]string{
			"type":     "RETURN_FOLLOW_UP",
			"order_id": fmt.Sprintf("%d", order.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to persist follow-up notification", "order_id", order.ID, "error", err)
	}

	if s.opsEmail != "" {
		if err := s.emailSvc.SendReturnFollowUpAlert(ctx, s.opsEmail, order.InvoiceNo, count, cause); err != nil {
			logger.Error("Failed to send follow-up alert email", "order_id", order.ID, "error", err)
		}
	}
}
