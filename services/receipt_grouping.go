package services

import (
	"math"
	"strings"

	"github.com/yeremiapane/pos-engine/models"
)

// RoutingTag identifies one printer an item must be routed to. The wire
// format on the item is "printerId|printerName|isMain" with isMain as the
// literal string "true" for the printer owning the full customer receipt.
type RoutingTag struct {
	PrinterID   string `json:"printer_id"`
	PrinterName string `json:"printer_name"`
	IsMain      bool   `json:"is_main"`
}

// PrinterKey groups items destined for the same printer. Grouping is by
// (name, main) pair: one physical printer may serve both roles.
type PrinterKey struct {
	Name string `json:"name"`
	Main bool   `json:"main"`
}

// ParseRoutingTags decodes an item's comma-joined routing tags. Tags with
// fewer than three fields are ignored.
func ParseRoutingTags(raw string) []RoutingTag {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	var tags []RoutingTag
	for _, part := range strings.Split(trimmed, ",") {
		fields := strings.Split(strings.TrimSpace(part), "|")
		if len(fields) < 3 {
			continue
		}
		tags = append(tags, RoutingTag{
			PrinterID:   fields[0],
			PrinterName: fields[1],
			IsMain:      fields[2] == "true",
		})
	}
	return tags
}

// GroupByPrinter fans items out by destination printer. An item tagged for
// several printers appears in every matching group; an untagged item
// appears nowhere. The main printer's group feeds the full receipt, all
// others get kitchen tickets without prices.
func GroupByPrinter(items []models.OrderItem) map[PrinterKey][]models.OrderItem {
	groups := make(map[PrinterKey][]models.OrderItem)
	for _, item := range items {
		for _, tag := range ParseRoutingTags(item.PrinterTags) {
			key := PrinterKey{Name: tag.PrinterName, Main: tag.IsMain}
			groups[key] = append(groups[key], item)
		}
	}
	return groups
}

// TaxBucket accumulates the taxable base and tax amounts of all items
// taxed at one rate.
type TaxBucket struct {
	Base float64 `json:"base"`
	Tax  float64 `json:"tax"`
}

// defaultTaxRate is the legacy rate synthesized when no item produces a
// bucket, so an empty order still prints one tax line.
const defaultTaxRate = 10

// BucketTaxByRate partitions items by tax rate for the receipt's tax
// breakdown. The rate is derived from each item's own base/tax pair (menu
// items use the menu base and tax, others the product pair) rounded to an
// integer percentage. If nothing yields a bucket, a single default 10%
// bucket is derived from the order total.
func BucketTaxByRate(items []models.OrderItem, orderTotal float64) map[int]TaxBucket {
	buckets := make(map[int]TaxBucket)

	for _, item := range items {
		base := item.ProductPrice
		tax := item.ProductTax
		if item.IsMenuItem() {
			base = item.MenuPrice
			tax = item.MenuTax
		}
		if base <= 0 {
			continue
		}

		rate := int(math.Round(tax / base * 100))
		bucket := buckets[rate]
		bucket.Base += base * float64(item.Quantity)
		bucket.Tax += tax * float64(item.Quantity)
		buckets[rate] = bucket
	}

	if len(buckets) == 0 {
		base := orderTotal / (1 + float64(defaultTaxRate)/100)
		buckets[defaultTaxRate] = TaxBucket{
			Base: base,
			Tax:  orderTotal - base,
		}
	}

	return buckets
}
