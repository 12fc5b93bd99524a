package services

import (
	"fmt"

	"github.com/yeremiapane/pos-engine/models"
)

// MenuGroup is one physical menu instance reconstructed from the flat item
// list: every item sharing (MenuID, MenuSecondaryID) belongs to it.
// BasePrice and TaxPerUnit come from the first member encountered (all
// members carry the same values); SupplementTotal accumulates every
// member's supplement.
type MenuGroup struct {
	Key             string             `json:"key"`
	MenuID          uint               `json:"menu_id"`
	MenuName        string             `json:"menu_name"`
	SecondaryID     int                `json:"secondary_id"`
	BasePrice       float64            `json:"base_price"`
	TaxPerUnit      float64            `json:"tax_per_unit"`
	SupplementTotal float64            `json:"supplement_total"`
	Items           []models.OrderItem `json:"items"`
}

// Quantity returns the quantity of the menu instance. Members share the
// same quantity, so the first one is authoritative.
func (g *MenuGroup) Quantity() int {
	if len(g.Items) == 0 {
		return 0
	}
	return g.Items[0].Quantity
}

// Total prices the whole group: the shared base (menu price + menu tax +
// accumulated supplements) times the group quantity, plus each member's
// variant and complement surcharges times its own quantity.
func (g *MenuGroup) Total() float64 {
	total := (g.BasePrice + g.TaxPerUnit + g.SupplementTotal) * float64(g.Quantity())
	for _, item := range g.Items {
		total += itemExtras(&item) * float64(item.Quantity)
	}
	return total
}

// PricedOrder is the result of pricing a flat item list.
type PricedOrder struct {
	OrderTotal   float64            `json:"order_total"`
	NonMenuItems []models.OrderItem `json:"non_menu_items"`
	MenuGroups   []MenuGroup        `json:"menu_groups"`
}

// PriceOrder partitions items into regular items and menu groups and
// computes the order total. Pure and order-independent: permuting the
// input never changes the total. No rounding is applied here; full float
// precision is kept until display.
func PriceOrder(items []models.OrderItem) PricedOrder {
	priced := PricedOrder{
		NonMenuItems: make([]models.OrderItem, 0),
		MenuGroups:   make([]MenuGroup, 0),
	}

	groupIndex := make(map[string]int)

	for _, item := range items {
		if !item.IsMenuItem() {
			priced.NonMenuItems = append(priced.NonMenuItems, item)
			continue
		}

		key := fmt.Sprintf("%d-%d", *item.MenuID, item.MenuSecondaryID)
		idx, ok := groupIndex[key]
		if !ok {
			priced.MenuGroups = append(priced.MenuGroups, MenuGroup{
				Key:         key,
				MenuID:      *item.MenuID,
				MenuName:    item.MenuName,
				SecondaryID: item.MenuSecondaryID,
				BasePrice:   item.MenuPrice,
				TaxPerUnit:  item.MenuTax,
			})
			idx = len(priced.MenuGroups) - 1
			groupIndex[key] = idx
		}
		priced.MenuGroups[idx].SupplementTotal += item.Supplement
		priced.MenuGroups[idx].Items = append(priced.MenuGroups[idx].Items, item)
	}

	for _, item := range priced.NonMenuItems {
		priced.OrderTotal += nonMenuUnit(&item) * float64(item.Quantity)
	}
	for i := range priced.MenuGroups {
		priced.OrderTotal += priced.MenuGroups[i].Total()
	}

	return priced
}

// LineTotal returns one item's standalone total, used where a per-item
// price is needed without a full order context (receipt lines).
//
// Menu items price as (menu price + menu tax + supplement) x quantity:
// the menu's base and tax are shared at the group level while the
// supplement is per item, so a standalone menu line deliberately ignores
// variant and complement surcharges. This asymmetry matches totals already
// in use on printed receipts and must not be "corrected" here.
func LineTotal(item *models.OrderItem) float64 {
	if item.IsMenuItem() {
		return (item.MenuPrice + item.MenuTax + item.Supplement) * float64(item.Quantity)
	}
	return nonMenuUnit(item) * float64(item.Quantity)
}

// nonMenuUnit is the per-unit price of a regular item.
func nonMenuUnit(item *models.OrderItem) float64 {
	return item.ProductPrice + item.ProductTax - item.ProductDiscount + itemExtras(item)
}

// itemExtras sums the per-unit variant and complement surcharges.
func itemExtras(item *models.OrderItem) float64 {
	extras := item.VariantPrice
	for _, c := range item.Complements {
		extras += c.Price
	}
	return extras
}
