package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/events"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/services"
	"github.com/yeremiapane/pos-engine/utils"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *services.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:      db,
		Service: services.NewPaymentService(services.NewGormOrderUpdater(db)),
	}
}

// PayOrder -> apply one or more tenders to a single order
func (pc *PaymentController) PayOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	type ReqBody struct {
		Tenders []services.Tender `json:"tenders" binding:"required"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := pc.DB.Preload("Items.Complements").Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("order not found"))
		return
	}

	result, err := pc.Service.ApplyPayment(c.Request.Context(), &order, body.Tenders)
	if err != nil {
		if errors.Is(err, services.ErrNoTender) || errors.Is(err, services.ErrNegativeAmount) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastPaymentApplied(order.ID, result.Ledger, result.Command.IsPaid)

	utils.RespondJSON(c, http.StatusOK, "Payment applied", result)
}

// GetPaymentStatus -> current ledger and derived status for one order
func (pc *PaymentController) GetPaymentStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := pc.DB.Preload("Items.Complements").Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	priced := services.PriceOrder(order.Items)
	ledger := services.ParseLedger(order.PaymentType)

	utils.RespondJSON(c, http.StatusOK, "Payment status", gin.H{
		"ledger": ledger,
		"status": services.EvaluatePayment(ledger, priced.OrderTotal),
	})
}

// BulkSettle -> distribute one aggregate payment across a delivery
// person's outstanding delivered orders, oldest first.
func (pc *PaymentController) BulkSettle(c *gin.Context) {
	type ReqBody struct {
		DeliveryPerson string                       `json:"delivery_person" binding:"required"`
		Methods        []services.BulkPaymentMethod `json:"methods" binding:"required"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var delivered []models.Order
	if err := pc.DB.Preload("Items.Complements").Preload("Items").
		Where("delivery_person = ? AND status = ?", body.DeliveryPerson, models.OrderStatusDelivered).
		Find(&delivered).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// The allocator only orders and distributes; candidate filtering
	// (outstanding balance) happens here.
	candidates := make([]models.Order, 0, len(delivered))
	for _, order := range delivered {
		priced := services.PriceOrder(order.Items)
		status := services.EvaluatePayment(services.ParseLedger(order.PaymentType), priced.OrderTotal)
		if status.Status == services.PaymentStatusPaid {
			continue
		}
		candidates = append(candidates, order)
	}

	result, err := pc.Service.AllocateBulkPayment(c.Request.Context(), candidates, body.Methods)
	if err != nil {
		if errors.Is(err, services.ErrNegativeAmount) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBulkSettlement(result)

	message := "Bulk settlement applied"
	if result.AppliedCount < result.AttemptedCount {
		message = fmt.Sprintf("Bulk settlement partially applied (%d/%d orders)",
			result.AppliedCount, result.AttemptedCount)
	}
	utils.RespondJSON(c, http.StatusOK, message, result)
}
