package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, customer_id, customer_name, customer_phone, invoice_no, start_date, end_date, rental_days,
	subtotal_cents, tax_cents, total_cents, deposit_cents, late_fee_cents, status, created_by, created_on, updated_on`

const lineItemColumns = `id, order_id, photo_url, product_name, quantity, price_per_day_cents, rental_days, line_total_cents,
	return_status, returned_on, late_return, returned_quantity, damage_cost_cents, damage_description, missing_note`

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (customer_id, customer_name, customer_phone, invoice_no, start_date, end_date, rental_days,
	          subtotal_cents, tax_cents, total_cents, deposit_cents, late_fee_cents, status, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	now := time.Now()
	err = tx.QueryRowContext(ctx, query,
		o.CustomerID, o.CustomerName, o.CustomerPhone, o.InvoiceNo, o.StartDate, o.EndDate, o.RentalDays,
		o.SubtotalCents, o.TaxCents, o.TotalCents, o.DepositCents, o.LateFeeCents, o.Status, o.CreatedBy, now, now,
	).Scan(&o.ID)
	if err != nil {
		return err
	}

	if err := insertLineItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func insertLineItems(ctx context.Context, tx *sql.Tx, orderID int64, items []domain.LineItem) error {
	query := `INSERT INTO line_items (order_id, photo_url, product_name, quantity, price_per_day_cents, rental_days, line_total_cents,
	          return_status, returned_on, late_return, returned_quantity, damage_cost_cents, damage_description, missing_note)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	for i := range items {
		it := &items[i]
		it.OrderID = orderID
		if it.ReturnStatus == "" {
			it.ReturnStatus = domain.ReturnStatusPending
		}
		err := tx.QueryRowContext(ctx, query,
			orderID, it.PhotoURL, it.ProductName, it.Quantity, it.PricePerDayCents, it.RentalDays, it.LineTotalCents,
			it.ReturnStatus, it.ReturnedOn, it.LateReturn, it.ReturnedQuantity, it.DamageCostCents, it.DamageDescription, it.MissingNote,
		).Scan(&it.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerPhone, &o.InvoiceNo, &o.StartDate, &o.EndDate, &o.RentalDays,
		&o.SubtotalCents, &o.TaxCents, &o.TotalCents, &o.DepositCents, &o.LateFeeCents, &o.Status, &o.CreatedBy, &o.CreatedOn, &o.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+lineItemColumns+` FROM line_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.LineItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.PhotoURL, &it.ProductName, &it.Quantity, &it.PricePerDayCents, &it.RentalDays, &it.LineTotalCents,
			&it.ReturnStatus, &it.ReturnedOn, &it.LateReturn, &it.ReturnedQuantity, &it.DamageCostCents, &it.DamageDescription, &it.MissingNote,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces the order fields and its item list wholesale; an edited
// draft always carries the complete set of line items.
func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE orders SET customer_id=$1, customer_name=$2, customer_phone=$3, invoice_no=$4, start_date=$5, end_date=$6,
	          rental_days=$7, subtotal_cents=$8, tax_cents=$9, total_cents=$10, deposit_cents=$11, status=$12, updated_on=$13
	          WHERE id=$14`
	res, err := tx.ExecContext(ctx, query,
		o.CustomerID, o.CustomerName, o.CustomerPhone, o.InvoiceNo, o.StartDate, o.EndDate,
		o.RentalDays, o.SubtotalCents, o.TaxCents, o.TotalCents, o.DepositCents, o.Status, time.Now(), o.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM line_items WHERE order_id = $1`, o.ID); err != nil {
		return err
	}
	if err := insertLineItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *orderRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	return r.listOrders(ctx, query, args, argIdx, page, pageSize)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64, page, pageSize int32) ([]domain.Order, int32, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1`
	return r.listOrders(ctx, query, []interface{}{customerID}, 2, page, pageSize)
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args []interface{}, argIdx int, page, pageSize int32) ([]domain.Order, int32, error) {
	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerPhone, &o.InvoiceNo, &o.StartDate, &o.EndDate, &o.RentalDays,
			&o.SubtotalCents, &o.TaxCents, &o.TotalCents, &o.DepositCents, &o.LateFeeCents, &o.Status, &o.CreatedBy, &o.CreatedOn, &o.UpdatedOn,
		); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}

// ApplyReturnTransitions applies one batch of return-state changes in a
// single transaction: line items move to their target status, the late fee
// (when present) lands on the order, and the order flips to COMPLETED once
// nothing is outstanding.
func (r *orderRepository) ApplyReturnTransitions(ctx context.Context, orderID int64, transitions []domain.ReturnTransition, actorID int64, lateFeeCents int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var endDate time.Time
	if err := tx.QueryRowContext(ctx, `SELECT end_date FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&endDate); err != nil {
		return err
	}

	for _, t := range transitions {
		switch t.TargetStatus {
		case domain.ReturnStatusReturned:
			late := t.ReturnedOn != nil && t.ReturnedOn.After(endDate)
			query := `UPDATE line_items SET return_status=$1, returned_on=$2, late_return=$3, returned_quantity=$4,
			          damage_cost_cents=$5, damage_description=$6, processed_by=$7 WHERE id=$8 AND order_id=$9`
			if _, err := tx.ExecContext(ctx, query,
				t.TargetStatus, t.ReturnedOn, late, t.ReturnedQuantity,
				t.DamageCostCents, t.DamageDescription, actorID, t.ItemID, orderID); err != nil {
				return err
			}

		case domain.ReturnStatusMissing:
			query := `UPDATE line_items SET return_status=$1, missing_note=$2, damage_cost_cents=$3, damage_description=$4,
			          processed_by=$5 WHERE id=$6 AND order_id=$7`
			if _, err := tx.ExecContext(ctx, query,
				t.TargetStatus, t.Note, t.DamageCostCents, t.DamageDescription, actorID, t.ItemID, orderID); err != nil {
				return err
			}

		case domain.ReturnStatusPending:
			// Reversal: the item re-opens as outstanding.
			query := `UPDATE line_items SET return_status=$1, returned_on=NULL, late_return=NULL, returned_quantity=NULL
			          WHERE id=$2 AND order_id=$3`
			if _, err := tx.ExecContext(ctx, query, t.TargetStatus, t.ItemID, orderID); err != nil {
				return err
			}

		default:
			return fmt.Errorf("unknown target status %q for item %d", t.TargetStatus, t.ItemID)
		}
	}

	if lateFeeCents > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE orders SET late_fee_cents = $1 WHERE id = $2`, lateFeeCents, orderID); err != nil {
			return err
		}
	}

	var pending int32
	if err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM line_items WHERE order_id = $1 AND return_status = $2`,
		orderID, domain.ReturnStatusPending).Scan(&pending); err != nil {
		return err
	}

	status := domain.OrderStatusActive
	if pending == 0 {
		status = domain.OrderStatusCompleted
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_on = $2 WHERE id = $3 AND status <> $4`,
		status, time.Now(), orderID, domain.OrderStatusCancelled); err != nil {
		return err
	}

	return tx.Commit()
}
