package domain

import (
	"fmt"
	"time"
)

type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "NOT_YET_RETURNED"
	ReturnStatusReturned ReturnStatus = "RETURNED"
	ReturnStatusMissing  ReturnStatus = "MISSING"
)

type LineItem struct {
	ID               int64        `json:"id"` // 0 until persisted
	OrderID          int64        `json:"order_id,omitempty"`
	PhotoURL         string       `json:"photo_url"`
	ProductName      string       `json:"product_name,omitempty"`
	Quantity         int32        `json:"quantity"`
	PricePerDayCents int64        `json:"price_per_day_cents"`
	RentalDays       int32        `json:"rental_days"`
	// LineTotalCents is quantity * price_per_day. The day multiplier is
	// applied at reporting time, never folded in here.
	LineTotalCents    int64        `json:"line_total_cents"`
	ReturnStatus      ReturnStatus `json:"return_status"`
	ReturnedOn        *time.Time   `json:"returned_on,omitempty"`
	LateReturn        *bool        `json:"late_return,omitempty"`
	ReturnedQuantity  *int32       `json:"returned_quantity,omitempty"`
	DamageCostCents   *int64       `json:"damage_cost_cents,omitempty"`
	DamageDescription string       `json:"damage_description,omitempty"`
	MissingNote       string       `json:"missing_note,omitempty"`
}

// IdentityKey is the deduplication key for a line item: the persisted id when
// present, otherwise a composite of the descriptive fields. Unpersisted items
// that look identical are treated as the same item.
func (li *LineItem) IdentityKey() string {
	if li.ID != 0 {
		return fmt.Sprintf("id:%d", li.ID)
	}
	return fmt.Sprintf("%s|%s|%d|%d|%d|%d",
		li.PhotoURL, li.ProductName, li.Quantity,
		li.PricePerDayCents, li.RentalDays, li.LineTotalCents)
}

// PendingQuantity is the number of units still outstanding, accounting for a
// previous partial return.
func (li *LineItem) PendingQuantity() int32 {
	if li.ReturnedQuantity != nil && *li.ReturnedQuantity < li.Quantity {
		return li.Quantity - *li.ReturnedQuantity
	}
	if li.ReturnStatus == ReturnStatusPending {
		return li.Quantity
	}
	return 0
}
