package reconcile

import (
	"fmt"
	"time"

	"glanz-rental-backend/internal/domain"
)

// Decision captures the operator's input for one line item on the return
// screen. A nil ReturnQuantity means a full return of whatever is
// outstanding; Missing marks the whole item as not coming back.
type Decision struct {
	Selected          bool
	Missing           bool
	MissingNote       string
	ReturnQuantity    *int32
	DamageCostCents   *int64
	DamageDescription string
}

// Plan is the result of classifying return decisions into the two
// persistence batches. Immediate holds returned/missing/reversal transitions
// submitted first; Deferred holds the missing remainders of partial returns,
// which must only be applied after Immediate is confirmed persisted (the
// second batch depends on stock counters the first one updates). The late
// fee rides on the immediate batch only, never the deferred one.
type Plan struct {
	Immediate    []domain.ReturnTransition
	Deferred     []domain.ReturnTransition
	LateFeeCents int64
}

// Empty reports whether the plan carries no transitions at all.
func (p *Plan) Empty() bool {
	return len(p.Immediate) == 0 && len(p.Deferred) == 0
}

// BuildPlan transforms per-item return decisions into transition batches.
//
// For each selected item not already returned:
//   - flagged missing as a whole: a MISSING transition with note and damage
//     fields, no timestamp, no quantity;
//   - a partial quantity strictly between 0 and the outstanding quantity:
//     a RETURNED transition for that quantity now, plus a deferred MISSING
//     transition for the remainder;
//   - otherwise: a RETURNED transition for the full outstanding quantity.
//
// A previously returned item that is now explicitly deselected produces a
// NOT_YET_RETURNED reversal carrying no timestamp or quantity.
func BuildPlan(items []domain.LineItem, decisions map[int64]Decision, lateFeeCents int64, now time.Time) Plan {
	plan := Plan{LateFeeCents: lateFeeCents}

	for i := range items {
		it := &items[i]
		dec, ok := decisions[it.ID]
		if !ok {
			continue
		}

		if !dec.Selected {
			if it.ReturnStatus == domain.ReturnStatusReturned {
				plan.Immediate = append(plan.Immediate, domain.ReturnTransition{
					ItemID:       it.ID,
					TargetStatus: domain.ReturnStatusPending,
				})
			}
			continue
		}

		if it.ReturnStatus == domain.ReturnStatusReturned {
			continue
		}

		pending := it.PendingQuantity()
		ts := now

		switch {
		case dec.Missing:
			plan.Immediate = append(plan.Immediate, domain.ReturnTransition{
				ItemID:            it.ID,
				TargetStatus:      domain.ReturnStatusMissing,
				DamageCostCents:   dec.DamageCostCents,
				DamageDescription: dec.DamageDescription,
				Note:              dec.MissingNote,
			})

		case dec.ReturnQuantity != nil && *dec.ReturnQuantity > 0 && *dec.ReturnQuantity < pending:
			qty := *dec.ReturnQuantity
			remainder := pending - qty
			plan.Immediate = append(plan.Immediate, domain.ReturnTransition{
				ItemID:           it.ID,
				TargetStatus:     domain.ReturnStatusReturned,
				ReturnedOn:       &ts,
				ReturnedQuantity: &qty,
			})
			plan.Deferred = append(plan.Deferred, domain.ReturnTransition{
				ItemID:            it.ID,
				TargetStatus:      domain.ReturnStatusMissing,
				ReturnedQuantity:  &remainder,
				DamageCostCents:   dec.DamageCostCents,
				DamageDescription: dec.DamageDescription,
				Note:              missingNote(dec),
			})

		default:
			full := pending
			plan.Immediate = append(plan.Immediate, domain.ReturnTransition{
				ItemID:            it.ID,
				TargetStatus:      domain.ReturnStatusReturned,
				ReturnedOn:        &ts,
				ReturnedQuantity:  &full,
				DamageCostCents:   dec.DamageCostCents,
				DamageDescription: dec.DamageDescription,
			})
		}
	}

	return plan
}

func missingNote(dec Decision) string {
	if dec.MissingNote != "" {
		return dec.MissingNote
	}
	if dec.DamageCostCents != nil && *dec.DamageCostCents > 0 {
		return fmt.Sprintf("Items not returned, damage cost %.2f recorded", float64(*dec.DamageCostCents)/100)
	}
	return "Items not returned"
}
