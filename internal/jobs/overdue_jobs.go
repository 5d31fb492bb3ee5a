package jobs

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/logger"
)

// MarkOverdueOrders marks orders as OVERDUE when they are past their end_date
// and still have unreturned items
func (jr *JobRunner) MarkOverdueOrders() {
	jr.runWithRecovery("MarkOverdueOrders", func() {
		ctx := context.Background()

		query := `
			UPDATE orders
			SET status = 'OVERDUE',
			    updated_on = NOW()
			WHERE status = 'ACTIVE'
			  AND end_date < $1
			  AND EXISTS (
			      SELECT 1 FROM line_items
			      WHERE line_items.order_id = orders.id
			        AND line_items.return_status = 'NOT_YET_RETURNED'
			  )
			RETURNING id, invoice_no, customer_name, end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark overdue orders", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id           int64
				invoiceNo    string
				customerName string
				endDate      string
			)
			if err := rows.Scan(&id, &invoiceNo, &customerName, &endDate); err != nil {
				logger.Error("Failed to scan overdue order", "error", err)
				continue
			}
			count++
			logger.Debug("Marked order as overdue",
				"order_id", id,
				"invoice_no", invoiceNo,
				"customer_name", customerName,
				"end_date", endDate)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue orders", "error", err)
			return
		}

		logger.Info("Marked orders as overdue", "count", count)
	})
}

// SendOverdueReminders notifies the order creators and the operations inbox
// about orders currently in OVERDUE status
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		query := `
			SELECT id, invoice_no, customer_name, end_date, created_by
			FROM orders
			WHERE status = 'OVERDUE'
			ORDER BY end_date ASC
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to load overdue orders", "error", err)
			return
		}
		defer rows.Close()

		type overdueOrder struct {
			ID           int64
			InvoiceNo    string
			CustomerName string
			EndDate      string
			CreatedBy    int64
		}

		var overdue []overdueOrder
		for rows.Next() {
			var o overdueOrder
			if err := rows.Scan(&o.ID, &o.InvoiceNo, &o.CustomerName, &o.EndDate, &o.CreatedBy); err != nil {
				logger.Error("Failed to scan overdue order", "error", err)
				continue
			}
			overdue = append(overdue, o)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue orders", "error", err)
			return
		}

		opsEmail := jr.config.Email.OpsEmail
		sent := 0
		for _, o := range overdue {
			note := &domain.Notification{
				UserID:  o.CreatedBy,
				Title:   "Rental overdue",
				Message: fmt.Sprintf("Order %s for %s passed its end date %s with items still out.", o.InvoiceNo, o.CustomerName, o.EndDate),
				Attributes: map[string]string{
					"order_id":   strconv.FormatInt(o.ID, 10),
					"invoice_no": o.InvoiceNo,
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create overdue notification",
					"order_id", o.ID, "error", err)
			}

			if opsEmail == "" {
				continue
			}
			if err := jr.services.Email.SendOverdueReminder(ctx, opsEmail, o.InvoiceNo, o.CustomerName, o.EndDate); err != nil {
				logger.Error("Failed to send overdue reminder",
					"order_id", o.ID, "invoice_no", o.InvoiceNo, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "overdue", len(overdue), "emails_sent", sent)
	})
}
