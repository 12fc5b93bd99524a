package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/events"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/services"
	"github.com/yeremiapane/pos-engine/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// ItemReq mirrors the OrderItem facets the client composes. Prices are
// denormalized onto the request so pricing never consults a catalog.
type ItemReq struct {
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductPrice    float64 `json:"product_price"`
	ProductTax      float64 `json:"product_tax"`
	ProductDiscount float64 `json:"product_discount"`
	VariantID       *uint   `json:"variant_id,omitempty"`
	VariantName     string  `json:"variant_name,omitempty"`
	VariantPrice    float64 `json:"variant_price"`
	Quantity        int     `json:"quantity"`
	Complements     []struct {
		GroupID   uint    `json:"group_id"`
		GroupName string  `json:"group_name"`
		ItemID    uint    `json:"item_id"`
		ItemName  string  `json:"item_name"`
		Price     float64 `json:"price"`
	} `json:"complements"`
	MenuID          *uint   `json:"menu_id,omitempty"`
	MenuSecondaryID int     `json:"menu_secondary_id,omitempty"`
	MenuName        string  `json:"menu_name,omitempty"`
	MenuPrice       float64 `json:"menu_price"`
	MenuTax         float64 `json:"menu_tax"`
	Supplement      float64 `json:"supplement"`
	MenuPageName    string  `json:"menu_page_name,omitempty"`
	PrinterTags     string  `json:"printer_tags,omitempty"`
}

func (r *ItemReq) toModel() models.OrderItem {
	item := models.OrderItem{
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		ProductPrice:    r.ProductPrice,
		ProductTax:      r.ProductTax,
		ProductDiscount: r.ProductDiscount,
		VariantID:       r.VariantID,
		VariantName:     r.VariantName,
		VariantPrice:    r.VariantPrice,
		Quantity:        r.Quantity,
		MenuID:          r.MenuID,
		MenuSecondaryID: r.MenuSecondaryID,
		MenuName:        r.MenuName,
		MenuPrice:       r.MenuPrice,
		MenuTax:         r.MenuTax,
		Supplement:      r.Supplement,
		MenuPageName:    r.MenuPageName,
		PrinterTags:     r.PrinterTags,
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for _, comp := range r.Complements {
		item.Complements = append(item.Complements, models.ItemComplement{
			GroupID:   comp.GroupID,
			GroupName: comp.GroupName,
			ItemID:    comp.ItemID,
			ItemName:  comp.ItemName,
			Price:     comp.Price,
		})
	}
	item.TotalPrice = services.LineTotal(&item)
	return item
}

// GetAllOrders -> list orders with their items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items.Complements").Preload("Items").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> create an order with an empty payment ledger
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ReqBody struct {
		OrderNumber    uint      `json:"order_number"`
		OrderType      string    `json:"order_type"`
		DeliveryPerson string    `json:"delivery_person"`
		Items          []ItemReq `json:"items" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items := make([]models.OrderItem, 0, len(body.Items))
	for i := range body.Items {
		items = append(items, body.Items[i].toModel())
	}

	priced := services.PriceOrder(items)

	order := models.Order{
		OrderNumber:    body.OrderNumber,
		Status:         models.OrderStatusOpen,
		OrderType:      body.OrderType,
		DeliveryPerson: body.DeliveryPerson,
		PaymentType:    models.PendingType,
		TotalAmount:    priced.OrderTotal,
		Items:          items,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail of a single order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Items.Complements").Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetOrderPricing -> full pricing breakdown plus current payment status
func (oc *OrderController) GetOrderPricing(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Items.Complements").Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	priced := services.PriceOrder(order.Items)
	status := services.EvaluatePayment(services.ParseLedger(order.PaymentType), priced.OrderTotal)

	utils.RespondJSON(c, http.StatusOK, "Order pricing", gin.H{
		"pricing":        priced,
		"payment_status": status,
	})
}

// UpdateOrderStatus -> lifecycle transitions (open -> delivered -> closed)
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	type ReqBody struct {
		Status string `json:"status" binding:"required"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Status {
	case models.OrderStatusOpen, models.OrderStatusDelivered, models.OrderStatusClosed:
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status %q", body.Status))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = body.Status
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	if err := oc.DB.Delete(&models.Order{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
