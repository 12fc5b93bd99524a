package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-engine/controllers"
	"github.com/yeremiapane/pos-engine/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	receiptCtrl := controllers.NewReceiptController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Event stream for dashboards
	r.GET("/events/ws", controllers.EventsHandler)

	// Orders
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/orders/:order_id/pricing", orderCtrl.GetOrderPricing)
	r.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	r.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// Payments
	r.POST("/orders/:order_id/payments", paymentCtrl.PayOrder)
	r.GET("/orders/:order_id/payment-status", paymentCtrl.GetPaymentStatus)

	// Bulk settlement touches many orders per call; keep it behind the
	// strict limiter.
	settle := r.Group("/payments")
	settle.Use(middlewares.NewStrictRateLimiter())
	{
		settle.POST("/bulk-settlement", paymentCtrl.BulkSettle)
	}

	// Receipts
	r.GET("/orders/:order_id/receipt", receiptCtrl.GetReceiptData)
	r.GET("/orders/:order_id/taxes", receiptCtrl.GetTaxBreakdown)

	return r
}
