package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/controllers"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/utils"
)

func setupReceiptRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	receiptCtrl := controllers.NewReceiptController(db)
	router.GET("/orders/:order_id/receipt", receiptCtrl.GetReceiptData)
	router.GET("/orders/:order_id/taxes", receiptCtrl.GetTaxBreakdown)
	return router
}

func TestGetReceiptDataTickets(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupReceiptRouter(db)

	order := models.Order{
		Status:      models.OrderStatusOpen,
		PaymentType: "pending",
		Items: []models.OrderItem{
			{
				ProductName:  "Burger",
				ProductPrice: 8.00,
				ProductTax:   0.80,
				Quantity:     2,
				PrinterTags:  "1|Counter|true, 2|Kitchen|false",
				Complements: []models.ItemComplement{
					{ItemName: "Extra cheese", Price: 0.50},
				},
			},
			{
				ProductName:  "Beer",
				ProductPrice: 4.00,
				ProductTax:   0.40,
				Quantity:     1,
				PrinterTags:  "1|Counter|true",
			},
		},
	}
	db.Create(&order)

	w := doJSON(t, router, "GET", "/orders/1/receipt", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	tickets := data["tickets"].([]interface{})
	assert.Len(t, tickets, 2)

	var main, kitchen map[string]interface{}
	for _, raw := range tickets {
		ticket := raw.(map[string]interface{})
		if ticket["main"].(bool) {
			main = ticket
		} else {
			kitchen = ticket
		}
	}

	assert.Equal(t, "Counter", main["printer"])
	assert.Len(t, main["lines"].([]interface{}), 2)
	assert.NotNil(t, main["tax_breakdown"])
	// (8 + 0.8 + 0.5) x 2 + (4 + 0.4) x 1
	assert.InDelta(t, 23.0, main["order_total"].(float64), 1e-9)

	assert.Equal(t, "Kitchen", kitchen["printer"])
	lines := kitchen["kitchen_lines"].([]interface{})
	assert.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "Burger", line["name"])
	assert.Equal(t, []interface{}{"Extra cheese"}, line["add_ons"])
	// Kitchen tickets never carry prices or totals.
	assert.NotContains(t, kitchen, "lines")
	assert.NotContains(t, kitchen, "order_total")
}

func TestGetTaxBreakdown(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupReceiptRouter(db)

	order := models.Order{
		Status:      models.OrderStatusOpen,
		PaymentType: "pending",
		Items: []models.OrderItem{
			{ProductName: "Burger", ProductPrice: 8.00, ProductTax: 0.80, Quantity: 2},
			{ProductName: "Wine", ProductPrice: 5.00, ProductTax: 1.00, Quantity: 1},
		},
	}
	db.Create(&order)

	w := doJSON(t, router, "GET", "/orders/1/taxes", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	buckets := data["buckets"].(map[string]interface{})

	ten := buckets["10"].(map[string]interface{})
	assert.InDelta(t, 16.0, ten["base"].(float64), 1e-9)
	assert.InDelta(t, 1.6, ten["tax"].(float64), 1e-9)

	twenty := buckets["20"].(map[string]interface{})
	assert.InDelta(t, 5.0, twenty["base"].(float64), 1e-9)
	assert.InDelta(t, 1.0, twenty["tax"].(float64), 1e-9)
}
