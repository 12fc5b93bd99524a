package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/pos-engine/models"
)

func TestEvaluatePayment(t *testing.T) {
	tests := []struct {
		name          string
		paid          float64
		total         float64
		wantStatus    string
		wantRemaining float64
	}{
		{"nothing paid", 0, 20, PaymentStatusUnpaid, 20},
		{"half paid", 10, 20, PaymentStatusPartial, 10},
		{"exactly paid", 20, 20, PaymentStatusPaid, 0},
		{"overpaid clamps remaining", 25, 20, PaymentStatusPaid, 0},
		{"zero total unpaid", 0, 0, PaymentStatusUnpaid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ledger []models.PaymentEntry
			if tt.paid > 0 {
				ledger = []models.PaymentEntry{{Type: "cash", Amount: tt.paid}}
			}

			status := EvaluatePayment(ledger, tt.total)

			assert.Equal(t, tt.wantStatus, status.Status)
			assert.InDelta(t, tt.paid, status.TotalPaid, 1e-9)
			assert.InDelta(t, tt.wantRemaining, status.RemainingAmount, 1e-9)
		})
	}
}

func TestEvaluatePaymentEpsilonTolerance(t *testing.T) {
	// Float round-off just below the total still counts as paid.
	ledger := []models.PaymentEntry{{Type: "cash", Amount: 19.9999999}}

	status := EvaluatePayment(ledger, 20)

	assert.Equal(t, PaymentStatusPaid, status.Status)
}

func TestEvaluatePaymentMonotonic(t *testing.T) {
	rank := map[string]int{
		PaymentStatusUnpaid:  0,
		PaymentStatusPartial: 1,
		PaymentStatusPaid:    2,
	}

	last := -1
	for _, paid := range []float64{0, 0.01, 5, 19.99, 20, 100} {
		status := EvaluatePayment([]models.PaymentEntry{{Type: "cash", Amount: paid}}, 20)
		assert.GreaterOrEqual(t, rank[status.Status], last, "paid=%v", paid)
		last = rank[status.Status]
	}
}
