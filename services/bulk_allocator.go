package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/utils"
)

// BulkPaymentMethod is one method's share of an aggregate payment covering
// several orders at once.
type BulkPaymentMethod struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// OrderAllocation records the outcome for one candidate order in a bulk
// settlement.
type OrderAllocation struct {
	OrderID     uint                  `json:"order_id"`
	OrderNumber uint                  `json:"order_number"`
	Applied     float64               `json:"applied"`
	Entries     []models.PaymentEntry `json:"entries,omitempty"`
	IsPaid      bool                  `json:"is_paid"`
	Skipped     bool                  `json:"skipped"`
	Error       string                `json:"error,omitempty"`
}

// BulkResult summarizes a bulk settlement. AppliedCount < AttemptedCount
// signals partial success to the caller.
type BulkResult struct {
	AppliedCount   int               `json:"applied_count"`
	AttemptedCount int               `json:"attempted_count"`
	TotalBulk      float64           `json:"total_bulk"`
	RemainingBulk  float64           `json:"remaining_bulk"`
	PerOrder       []OrderAllocation `json:"per_order"`
}

// AllocateBulkPayment distributes one aggregate payment across candidate
// orders, oldest first. Callers are expected to have already filtered the
// candidates (one delivery person, delivered, not fully paid); the
// allocator only orders and distributes.
//
// Funds flow order by order: each order receives the lesser of its
// remaining amount and the remaining bulk, split across the payment
// methods proportionally to their share of the whole payment. Update
// commands are issued sequentially because each order's outcome decides
// how much money is left for the next; a failed command is recorded for
// that order and its allocation returns to the pool, the loop continues.
func (s *PaymentService) AllocateBulkPayment(ctx context.Context, candidates []models.Order, methods []BulkPaymentMethod) (BulkResult, error) {
	result := BulkResult{
		AttemptedCount: len(candidates),
		PerOrder:       make([]OrderAllocation, 0, len(candidates)),
	}

	for _, method := range methods {
		if method.Amount < 0 {
			return BulkResult{}, fmt.Errorf("%w: method %q", ErrNegativeAmount, method.Type)
		}
		result.TotalBulk += method.Amount
	}
	result.RemainingBulk = result.TotalBulk

	// No candidates or no money is a no-op, not an error.
	if len(candidates) == 0 || result.TotalBulk <= 0 {
		return result, nil
	}

	// Oldest debt first. Orders with a missing timestamp carry the zero
	// time and therefore sort to the front.
	sorted := make([]models.Order, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	for i := range sorted {
		order := &sorted[i]
		allocation := OrderAllocation{OrderID: order.ID, OrderNumber: order.OrderNumber}

		if result.RemainingBulk <= 0 {
			allocation.Skipped = true
			result.PerOrder = append(result.PerOrder, allocation)
			continue
		}

		priced := PriceOrder(order.Items)
		ledger := ParseLedger(order.PaymentType)
		status := EvaluatePayment(ledger, priced.OrderTotal)

		if status.RemainingAmount <= 0 {
			allocation.Skipped = true
			result.PerOrder = append(result.PerOrder, allocation)
			continue
		}

		toApply := status.RemainingAmount
		if toApply > result.RemainingBulk {
			toApply = result.RemainingBulk
		}

		// Preserve the payer's declared method mix: split this order's
		// share proportionally to each method's share of the whole
		// payment, dropping shares that round to zero cents.
		entries := make([]models.PaymentEntry, 0, len(methods))
		for _, method := range methods {
			share := utils.Round2(method.Amount / result.TotalBulk * toApply)
			if share <= 0 {
				continue
			}
			entries = append(entries, models.PaymentEntry{Type: method.Type, Amount: share})
		}
		if len(entries) == 0 {
			allocation.Skipped = true
			result.PerOrder = append(result.PerOrder, allocation)
			continue
		}

		newLedger := MergeLedgers(ledger, entries)
		command := OrderUpdate{
			PaymentType: SerializeLedger(newLedger),
			IsPaid:      LedgerTotal(newLedger) >= priced.OrderTotal-paymentEpsilon,
		}

		if err := s.updater.SubmitOrderUpdate(ctx, order.ID, command); err != nil {
			// One order's failure must not starve the rest of the batch:
			// its money stays in the pool for the next order.
			utils.ErrorLogger.Printf("bulk settlement: update failed for order %d: %v", order.ID, err)
			allocation.Error = err.Error()
			result.PerOrder = append(result.PerOrder, allocation)
			continue
		}

		allocation.Applied = toApply
		allocation.Entries = entries
		allocation.IsPaid = command.IsPaid
		result.PerOrder = append(result.PerOrder, allocation)

		result.AppliedCount++
		result.RemainingBulk -= toApply
	}

	return result, nil
}
