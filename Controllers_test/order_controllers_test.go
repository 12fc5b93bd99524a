package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/controllers"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// One named in-memory database per test: a bare ":memory:" DSN would
	// give every pooled connection its own database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.ItemComplement{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.GET("/orders/:order_id/pricing", orderCtrl.GetOrderPricing)
	router.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderComputesTotal(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"order_number": 101,
		"order_type":   "delivery",
		"items": []map[string]interface{}{
			{
				"product_id":    1,
				"product_name":  "Burger",
				"product_price": 8.0,
				"product_tax":   0.8,
				"variant_price": 1.0,
				"quantity":      2,
				"complements": []map[string]interface{}{
					{"item_id": 9, "item_name": "Extra cheese", "price": 0.5},
				},
			},
		},
	}

	w := doJSON(t, router, "POST", "/orders", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Order created", resp["message"])

	data := resp["data"].(map[string]interface{})
	assert.InDelta(t, 20.60, data["total_amount"].(float64), 1e-9)
	assert.Equal(t, "pending", data["payment_type"])
	assert.Equal(t, false, data["is_paid"])
}

func TestGetOrderPricingBreakdown(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_name": "Soup", "product_price": 5.0, "quantity": 1},
			{
				"product_name":      "Menu starter",
				"menu_id":           7,
				"menu_secondary_id": 1,
				"menu_price":        10.0,
				"menu_tax":          1.0,
				"supplement":        0.5,
				"quantity":          1,
			},
			{
				"product_name":      "Menu main",
				"menu_id":           7,
				"menu_secondary_id": 1,
				"menu_price":        10.0,
				"menu_tax":          1.0,
				"supplement":        0.5,
				"quantity":          1,
			},
		},
	}

	w := doJSON(t, router, "POST", "/orders", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/orders/1/pricing", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	pricing := data["pricing"].(map[string]interface{})
	// 5.00 plus the (10 + 1 + 1) menu group
	assert.InDelta(t, 17.0, pricing["order_total"].(float64), 1e-9)
	assert.Len(t, pricing["menu_groups"].([]interface{}), 1)
	assert.Len(t, pricing["non_menu_items"].([]interface{}), 1)

	status := data["payment_status"].(map[string]interface{})
	assert.Equal(t, "UNPAID", status["status"])
	assert.InDelta(t, 17.0, status["remaining_amount"].(float64), 1e-9)
}

func TestUpdateOrderStatus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	order := models.Order{Status: models.OrderStatusOpen, PaymentType: "pending"}
	db.Create(&order)

	w := doJSON(t, router, "PATCH", "/orders/1/status", map[string]interface{}{"status": "delivered"})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	assert.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)

	w = doJSON(t, router, "PATCH", "/orders/1/status", map[string]interface{}{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
