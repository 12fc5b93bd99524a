package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/services"
	"github.com/yeremiapane/pos-engine/utils"
)

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// ReceiptLine is one priced line on the customer-facing receipt.
type ReceiptLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	Formatted string  `json:"formatted"`
}

// KitchenLine is one line on a kitchen ticket: items and add-ons only, no
// prices.
type KitchenLine struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	AddOns   []string `json:"add_ons,omitempty"`
}

// PrinterTicket is the payload handed to external rendering for one
// destination printer.
type PrinterTicket struct {
	Printer      string                     `json:"printer"`
	Main         bool                       `json:"main"`
	Lines        []ReceiptLine              `json:"lines,omitempty"`
	Kitchen      []KitchenLine              `json:"kitchen_lines,omitempty"`
	OrderTotal   float64                    `json:"order_total,omitempty"`
	TaxBreakdown map[int]services.TaxBucket `json:"tax_breakdown,omitempty"`
}

// GetReceiptData -> grouped ticket payloads for every destination printer.
// The main printer receives priced lines, the order total and the per-rate
// tax breakdown; every other printer receives a simplified kitchen ticket.
func (rc *ReceiptController) GetReceiptData(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := rc.DB.Preload("Items.Complements").Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	priced := services.PriceOrder(order.Items)
	groups := services.GroupByPrinter(order.Items)

	tickets := make([]PrinterTicket, 0, len(groups))
	for key, items := range groups {
		ticket := PrinterTicket{Printer: key.Name, Main: key.Main}

		if key.Main {
			for i := range items {
				lineTotal := services.LineTotal(&items[i])
				ticket.Lines = append(ticket.Lines, ReceiptLine{
					Name:      items[i].ProductName,
					Quantity:  items[i].Quantity,
					LineTotal: lineTotal,
					Formatted: utils.FormatAmount(utils.Round2(lineTotal)),
				})
			}
			ticket.OrderTotal = utils.Round2(priced.OrderTotal)
			ticket.TaxBreakdown = services.BucketTaxByRate(items, priced.OrderTotal)
		} else {
			for i := range items {
				line := KitchenLine{
					Name:     items[i].ProductName,
					Quantity: items[i].Quantity,
				}
				for _, comp := range items[i].Complements {
					line.AddOns = append(line.AddOns, comp.ItemName)
				}
				ticket.Kitchen = append(ticket.Kitchen, line)
			}
		}

		tickets = append(tickets, ticket)
	}

	utils.RespondJSON(c, http.StatusOK, "Receipt data", gin.H{
		"order_id": order.ID,
		"tickets":  tickets,
	})
}

// GetTaxBreakdown -> per-rate tax buckets for one order
func (rc *ReceiptController) GetTaxBreakdown(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := rc.DB.Preload("Items.Complements").Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	priced := services.PriceOrder(order.Items)
	buckets := services.BucketTaxByRate(order.Items, priced.OrderTotal)

	utils.RespondJSON(c, http.StatusOK, "Tax breakdown", gin.H{
		"order_id":    order.ID,
		"order_total": priced.OrderTotal,
		"buckets":     buckets,
	})
}
