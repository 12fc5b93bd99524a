package services

import (
	"github.com/yeremiapane/pos-engine/models"
)

// Payment status values derived from a ledger relative to an order total.
const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusPartial = "PARTIAL"
	PaymentStatusUnpaid  = "UNPAID"
)

// paymentEpsilon absorbs float round-off when comparing paid amounts
// against order totals.
const paymentEpsilon = 1e-6

// PaymentStatus classifies an order's payment state against a total.
type PaymentStatus struct {
	Status          string  `json:"status"`
	TotalPaid       float64 `json:"total_paid"`
	RemainingAmount float64 `json:"remaining_amount"`
}

// EvaluatePayment derives the payment status of a (pending-filtered)
// ledger against the order total. Callers must pass the total computed
// from the order's current items; a stale cached total misclassifies
// orders whose items changed after a partial payment.
func EvaluatePayment(entries []models.PaymentEntry, orderTotal float64) PaymentStatus {
	totalPaid := LedgerTotal(entries)

	remaining := orderTotal - totalPaid
	if remaining < 0 {
		remaining = 0
	}

	status := PaymentStatusPartial
	if totalPaid <= 0 {
		status = PaymentStatusUnpaid
	} else if totalPaid >= orderTotal-paymentEpsilon {
		status = PaymentStatusPaid
	}

	return PaymentStatus{
		Status:          status,
		TotalPaid:       totalPaid,
		RemainingAmount: remaining,
	}
}
