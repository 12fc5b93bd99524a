package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/utils"
	"gorm.io/gorm"
)

// Validation errors, rejected before any ledger mutation is attempted.
var (
	ErrNoTender       = errors.New("no tender provided")
	ErrNegativeAmount = errors.New("negative payment amount")
)

// OrderUpdate is the command emitted towards the persistence collaborator
// after a payment is applied: the new serialized ledger and the derived
// paid flag. The engine never mutates persisted state itself.
type OrderUpdate struct {
	PaymentType string `json:"payment_type"`
	IsPaid      bool   `json:"is_paid"`
}

// OrderUpdater is the persistence collaborator that accepts an order
// update command. A returned error means the update did not take effect
// and the in-memory ledger must not be considered applied.
type OrderUpdater interface {
	SubmitOrderUpdate(ctx context.Context, orderID uint, update OrderUpdate) error
}

// GormOrderUpdater persists update commands on the orders table.
type GormOrderUpdater struct {
	DB *gorm.DB
}

func NewGormOrderUpdater(db *gorm.DB) *GormOrderUpdater {
	return &GormOrderUpdater{DB: db}
}

func (u *GormOrderUpdater) SubmitOrderUpdate(ctx context.Context, orderID uint, update OrderUpdate) error {
	result := u.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_type": update.PaymentType,
			"is_paid":      update.IsPaid,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order %d: %w", orderID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}

// Tender is one payment method offered in a single-order transaction.
type Tender struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// ApplyResult reports an applied single-order payment.
type ApplyResult struct {
	Command   OrderUpdate           `json:"command"`
	ChangeDue float64               `json:"change_due"`
	Ledger    []models.PaymentEntry `json:"ledger"`
	Status    PaymentStatus         `json:"status"`
}

// PaymentService applies payments to orders through an OrderUpdater.
type PaymentService struct {
	updater OrderUpdater
}

func NewPaymentService(updater OrderUpdater) *PaymentService {
	return &PaymentService{updater: updater}
}

// ApplyPayment applies one or more tendered amounts to a single order.
// Each successive tender is clamped so the sum of applied amounts never
// exceeds what the order still owes; the surplus of tendered over applied
// is returned as change due. The merged ledger is submitted to the
// persistence collaborator; on failure nothing is considered applied.
func (s *PaymentService) ApplyPayment(ctx context.Context, order *models.Order, tenders []Tender) (ApplyResult, error) {
	if len(tenders) == 0 {
		return ApplyResult{}, ErrNoTender
	}
	for _, tender := range tenders {
		if tender.Amount < 0 {
			return ApplyResult{}, fmt.Errorf("%w: tender %q", ErrNegativeAmount, tender.Method)
		}
	}

	priced := PriceOrder(order.Items)
	existing := ParseLedger(order.PaymentType)

	remaining := priced.OrderTotal - LedgerTotal(existing)
	if remaining < 0 {
		remaining = 0
	}

	var appliedSoFar, totalTendered float64
	applied := make([]models.PaymentEntry, 0, len(tenders))
	for _, tender := range tenders {
		totalTendered += tender.Amount

		room := remaining - appliedSoFar
		if room < 0 {
			room = 0
		}
		amount := tender.Amount
		if amount > room {
			amount = room
		}
		if amount <= 0 {
			continue
		}

		applied = append(applied, models.PaymentEntry{Type: tender.Method, Amount: amount})
		appliedSoFar += amount
	}

	changeDue := totalTendered - remaining
	if changeDue < 0 {
		changeDue = 0
	}

	newLedger := MergeLedgers(existing, applied)
	command := OrderUpdate{
		PaymentType: SerializeLedger(newLedger),
		IsPaid:      LedgerTotal(newLedger) >= priced.OrderTotal-paymentEpsilon,
	}

	if err := s.updater.SubmitOrderUpdate(ctx, order.ID, command); err != nil {
		utils.ErrorLogger.Printf("payment update rejected for order %d: %v", order.ID, err)
		return ApplyResult{}, err
	}

	return ApplyResult{
		Command:   command,
		ChangeDue: changeDue,
		Ledger:    newLedger,
		Status:    EvaluatePayment(newLedger, priced.OrderTotal),
	}, nil
}
