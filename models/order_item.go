package models

import (
	"time"
)

// OrderItem is one purchased line on an order. Product, variant and
// complement prices are denormalized onto the item at composition time so
// pricing never needs the catalog.
//
// The menu facet (MenuID and friends) is only present when the item was
// picked as part of a fixed-price menu. All items sharing the same
// (MenuID, MenuSecondaryID) pair belong to one physical menu instance and
// carry the same quantity.
type OrderItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	ProductID       uint    `gorm:"not null" json:"product_id"`
	ProductName     string  `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductPrice    float64 `gorm:"type:decimal(12,2);not null" json:"product_price"`
	ProductTax      float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"product_tax"`
	ProductDiscount float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"product_discount"`

	VariantID    *uint   `json:"variant_id,omitempty"`
	VariantName  string  `gorm:"type:varchar(255)" json:"variant_name,omitempty"`
	VariantPrice float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"variant_price"`

	Complements []ItemComplement `gorm:"foreignKey:OrderItemID" json:"complements"`

	Quantity int `gorm:"not null;default:1" json:"quantity"`
	// TotalPrice is the unit price captured at composition time; consumers
	// multiply by Quantity.
	TotalPrice float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_price"`

	// Menu composition facet. MenuID == nil means a regular (non-menu) item.
	MenuID          *uint   `gorm:"index" json:"menu_id,omitempty"`
	MenuSecondaryID int     `json:"menu_secondary_id,omitempty"`
	MenuName        string  `gorm:"type:varchar(255)" json:"menu_name,omitempty"`
	MenuPrice       float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"menu_price"`
	MenuTax         float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"menu_tax"`
	Supplement      float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"supplement"`
	MenuPageName    string  `gorm:"type:varchar(255)" json:"menu_page_name,omitempty"`

	// PrinterTags is a comma-joined list of routing tags, each of the form
	// "printerId|printerName|isMain". Parsed at the boundary by the receipt
	// grouping service, never consumed raw.
	PrinterTags string `gorm:"type:text" json:"printer_tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsMenuItem reports whether the item belongs to a menu composition.
func (i *OrderItem) IsMenuItem() bool {
	return i.MenuID != nil
}

// ItemComplement is a flat per-unit surcharge chosen for an order item
// (extra sauce, topping, side).
type ItemComplement struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderItemID uint    `gorm:"index" json:"order_item_id"`
	GroupID     uint    `json:"group_id"`
	GroupName   string  `gorm:"type:varchar(255)" json:"group_name"`
	ItemID      uint    `json:"item_id"`
	ItemName    string  `gorm:"type:varchar(255)" json:"item_name"`
	Price       float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
