package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glanz-rental-backend/internal/domain"
)

func newOrderRepoMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *orderRepository) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	return db, mock, &orderRepository{db: db}
}

func TestOrderRepository_Create(t *testing.T) {
	db, mock, repo := newOrderRepoMock(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		order := &domain.Order{
			CustomerID:    7,
			CustomerName:  "Ada",
			InvoiceNo:     "INV-001",
			StartDate:     "2025-05-01T00:00:00Z",
			EndDate:       "2025-05-03T00:00:00Z",
			RentalDays:    2,
			SubtotalCents: 400,
			TaxCents:      20,
			TotalCents:    420,
			Status:        domain.OrderStatusActive,
			CreatedBy:     1,
			Items: []domain.LineItem{
				{ProductName: "drill", Quantity: 2, PricePerDayCents: 100, LineTotalCents: 200},
			},
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectQuery("INSERT INTO line_items").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectCommit()

		err := repo.Create(ctx, order)
		require.NoError(t, err)
		assert.Equal(t, int64(42), order.ID)
		assert.Equal(t, int64(100), order.Items[0].ID)
		assert.Equal(t, int64(42), order.Items[0].OrderID)
		assert.Equal(t, domain.ReturnStatusPending, order.Items[0].ReturnStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.Create(ctx, &domain.Order{})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock, repo := newOrderRepoMock(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		orderRows := sqlmock.NewRows([]string{
			"id", "customer_id", "customer_name", "customer_phone", "invoice_no", "start_date", "end_date", "rental_days",
			"subtotal_cents", "tax_cents", "total_cents", "deposit_cents", "late_fee_cents", "status", "created_by", "created_on", "updated_on",
		}).AddRow(42, 7, "Ada", "555-0100", "INV-001", "2025-05-01T00:00:00Z", "2025-05-03T00:00:00Z", 2,
			400, 20, 420, 0, 0, "ACTIVE", 1, now.Format(time.RFC3339), now.Format(time.RFC3339))

		itemRows := sqlmock.NewRows([]string{
			"id", "order_id", "photo_url", "product_name", "quantity", "price_per_day_cents", "rental_days", "line_total_cents",
			"return_status", "returned_on", "late_return", "returned_quantity", "damage_cost_cents", "damage_description", "missing_note",
		}).AddRow(100, 42, "", "drill", 2, 100, 2, 200, "NOT_YET_RETURNED", nil, nil, nil, nil, "", "")

		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
			WithArgs(int64(42)).WillReturnRows(orderRows)
		mock.ExpectQuery("SELECT (.+) FROM line_items WHERE order_id = \\$1").
			WithArgs(int64(42)).WillReturnRows(itemRows)

		order, err := repo.GetByID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), order.ID)
		assert.Equal(t, "INV-001", order.InvoiceNo)
		require.Len(t, order.Items, 1)
		assert.Equal(t, domain.ReturnStatusPending, order.Items[0].ReturnStatus)
		assert.Nil(t, order.Items[0].ReturnedOn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
			WithArgs(int64(999)).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestOrderRepository_Update(t *testing.T) {
	db, mock, repo := newOrderRepoMock(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("Replaces items wholesale", func(t *testing.T) {
		order := &domain.Order{
			ID:         42,
			CustomerID: 7,
			Items: []domain.LineItem{
				{ProductName: "drill", Quantity: 1, PricePerDayCents: 100, LineTotalCents: 100},
			},
		}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM line_items WHERE order_id = \\$1").
			WithArgs(int64(42)).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("INSERT INTO line_items").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
		mock.ExpectCommit()

		err := repo.Update(ctx, order)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing order reports no rows", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Update(ctx, &domain.Order{ID: 999})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestOrderRepository_ApplyReturnTransitions(t *testing.T) {
	ctx := context.Background()
	endDate := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)

	returnedOn := endDate.Add(48 * time.Hour)
	qty := int32(2)

	t.Run("Returned transition flips the order to COMPLETED", func(t *testing.T) {
		db, mock, repo := newOrderRepoMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT end_date FROM orders WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"end_date"}).AddRow(endDate))
		mock.ExpectExec("UPDATE line_items SET return_status").
			WithArgs(domain.ReturnStatusReturned, sqlmock.AnyArg(), true, &qty,
				nil, "", int64(9), int64(100), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE orders SET late_fee_cents").
			WithArgs(int64(2500), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM line_items").
			WithArgs(int64(42), domain.ReturnStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(domain.OrderStatusCompleted, sqlmock.AnyArg(), int64(42), domain.OrderStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		transitions := []domain.ReturnTransition{
			{ItemID: 100, TargetStatus: domain.ReturnStatusReturned, ReturnedOn: &returnedOn, ReturnedQuantity: &qty},
		}
		err := repo.ApplyReturnTransitions(ctx, 42, transitions, 9, 2500)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Pending items keep the order ACTIVE, no late fee update", func(t *testing.T) {
		db, mock, repo := newOrderRepoMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT end_date FROM orders WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"end_date"}).AddRow(endDate))
		mock.ExpectExec("UPDATE line_items SET return_status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM line_items").
			WithArgs(int64(42), domain.ReturnStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(domain.OrderStatusActive, sqlmock.AnyArg(), int64(42), domain.OrderStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		transitions := []domain.ReturnTransition{
			{ItemID: 100, TargetStatus: domain.ReturnStatusMissing, Note: "gone"},
		}
		err := repo.ApplyReturnTransitions(ctx, 42, transitions, 9, 0)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown target status", func(t *testing.T) {
		db, mock, repo := newOrderRepoMock(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT end_date FROM orders WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"end_date"}).AddRow(endDate))
		mock.ExpectRollback()

		transitions := []domain.ReturnTransition{
			{ItemID: 100, TargetStatus: "BOGUS"},
		}
		err := repo.ApplyReturnTransitions(ctx, 42, transitions, 9, 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown target status")
	})
}

func TestOrderRepository_List(t *testing.T) {
	db, mock, repo := newOrderRepoMock(t)
	defer db.Close()
	ctx := context.Background()

	now := time.Now().Format(time.RFC3339)
	listRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "customer_id", "customer_name", "customer_phone", "invoice_no", "start_date", "end_date", "rental_days",
			"subtotal_cents", "tax_cents", "total_cents", "deposit_cents", "late_fee_cents", "status", "created_by", "created_on", "updated_on",
		}).AddRow(1, 7, "Ada", "", "INV-001", now, now, 1, 100, 0, 100, 0, 0, "ACTIVE", 1, now, now)
	}

	t.Run("Counts then pages", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM").
			WithArgs("ACTIVE").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE status = \\$1 ORDER BY created_on DESC").
			WithArgs("ACTIVE", int32(10), int32(10)).
			WillReturnRows(listRows())

		orders, total, err := repo.List(ctx, "ACTIVE", 2, 10)
		require.NoError(t, err)
		assert.Equal(t, int32(11), total)
		assert.Len(t, orders, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No status filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY created_on DESC").
			WithArgs(int32(20), int32(0)).
			WillReturnRows(listRows())

		orders, total, err := repo.List(ctx, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, orders, 1)
	})
}
