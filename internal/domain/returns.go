package domain

import "time"

// ReturnTransition is one requested state change for a line item during a
// return operation. A PENDING target is an explicit reversal of a previous
// return and carries no timestamp or quantity.
type ReturnTransition struct {
	ItemID            int64        `json:"item_id"`
	TargetStatus      ReturnStatus `json:"target_status"`
	ReturnedOn        *time.Time   `json:"returned_on,omitempty"`
	ReturnedQuantity  *int32       `json:"returned_quantity,omitempty"`
	DamageCostCents   *int64       `json:"damage_cost_cents,omitempty"`
	DamageDescription string       `json:"damage_description,omitempty"`
	Note              string       `json:"note,omitempty"`
}
