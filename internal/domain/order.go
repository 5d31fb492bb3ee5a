package domain

type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusOverdue   OrderStatus = "OVERDUE"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	// Customer snapshot fields, captured from the customer at order creation
	// time so invoices stay stable when the customer record changes.
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	InvoiceNo     string      `json:"invoice_no"`
	StartDate     string      `json:"start_date"` // RFC3339
	EndDate       string      `json:"end_date"`   // RFC3339
	RentalDays    int32       `json:"rental_days"`
	SubtotalCents int64       `json:"subtotal_cents"`
	TaxCents      int64       `json:"tax_cents"`
	TotalCents    int64       `json:"total_cents"`
	DepositCents  int64       `json:"deposit_cents"`
	LateFeeCents  int64       `json:"late_fee_cents"`
	Status        OrderStatus `json:"status"`
	CreatedBy     int64       `json:"created_by"`
	Items         []LineItem  `json:"items,omitempty"`
	CreatedOn     string      `json:"created_on"`
	UpdatedOn     string      `json:"updated_on"`
}

// OutstandingItems returns the line items that are still out with the
// customer (not fully returned and not written off as missing).
func (o *Order) OutstandingItems() []LineItem {
	var out []LineItem
	for _, it := range o.Items {
		if it.ReturnStatus == ReturnStatusPending {
			out = append(out, it)
		}
	}
	return out
}
