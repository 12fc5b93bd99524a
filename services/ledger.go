package services

import (
	"strconv"
	"strings"

	"github.com/yeremiapane/pos-engine/models"
)

// The payment ledger wire format is "type:amount, type:amount" with
// unrestricted fraction digits. It is the only persisted representation of
// partial-payment state, so parsing and serialization must stay exactly
// reproducible for orders already in the database.

// ParseLedger decodes a serialized ledger. Empty input, whitespace, or the
// "pending" sentinel yield an empty ledger. A segment whose amount does
// not parse as a non-negative number is degraded to amount 0 instead of
// failing the whole ledger. Entries typed "pending" (any casing) are
// filtered out: the sentinel never contributes to balances.
func ParseLedger(raw string) []models.PaymentEntry {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, models.PendingType) {
		return []models.PaymentEntry{}
	}

	segments := strings.Split(trimmed, ", ")
	entries := make([]models.PaymentEntry, 0, len(segments))

	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		parts := strings.SplitN(segment, ":", 2)
		entryType := strings.TrimSpace(parts[0])
		if strings.EqualFold(entryType, models.PendingType) {
			continue
		}

		amount := 0.0
		if len(parts) == 2 {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err == nil && parsed >= 0 {
				amount = parsed
			}
		}

		entries = append(entries, models.PaymentEntry{Type: entryType, Amount: amount})
	}

	return entries
}

// SerializeLedger encodes entries back to the wire format. Amounts keep
// full precision; truncating to 2 decimals here would lose cents across
// repeated merges, so rounding is left to display boundaries.
func SerializeLedger(entries []models.PaymentEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, entry.Type+":"+strconv.FormatFloat(entry.Amount, 'f', -1, 64))
	}
	return strings.Join(parts, ", ")
}

// MergeLedgers folds incoming entries into the existing ledger. Entries of
// the same type coalesce into one by summing amounts; new types append.
// First-seen type order is preserved, but only per-type sums are
// contractual.
func MergeLedgers(existing, incoming []models.PaymentEntry) []models.PaymentEntry {
	merged := make([]models.PaymentEntry, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, entry := range merged {
		if _, seen := index[entry.Type]; !seen {
			index[entry.Type] = i
		}
	}

	for _, entry := range incoming {
		if i, ok := index[entry.Type]; ok {
			merged[i].Amount += entry.Amount
			continue
		}
		index[entry.Type] = len(merged)
		merged = append(merged, entry)
	}

	return merged
}

// LedgerTotal sums a parsed ledger.
func LedgerTotal(entries []models.PaymentEntry) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.Amount
	}
	return total
}
