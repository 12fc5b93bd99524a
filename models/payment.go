package models

// PaymentEntry is one recorded payment against an order, by method.
// The sentinel type "pending" with amount 0 denotes "no payment yet" and
// never contributes to balances.
type PaymentEntry struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// PendingType is the ledger sentinel for "no real payment recorded yet".
const PendingType = "pending"
