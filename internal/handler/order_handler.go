package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/service"
)

// OrderHandler handles the order ledger endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	filter := domain.OrderFilter{
		Search:         c.Query("search"),
		PaymentStatus:  c.Query("payment_status"),
		DeliveryStatus: c.Query("delivery_status"),
		Priority:       c.Query("priority"),
		StartDate:      c.Query("start_date"),
		EndDate:        c.Query("end_date"),
	}
	orders, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, orders)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, order)
}

// Create handles POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var order domain.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	created, err := h.orderService.Create(c.Request.Context(), &order)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, created)
}

// Update handles PUT /api/v1/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var order domain.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	order.OrderID = c.Param("id")

	updated, err := h.orderService.Update(c.Request.Context(), &order)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, updated)
}

// Delete handles DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orderService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// Summary handles GET /api/v1/orders/summary
func (h *OrderHandler) Summary(c *gin.Context) {
	filter := domain.OrderFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	summary, err := h.orderService.Summary(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// Messages handles GET /api/v1/orders/:id/messages
func (h *OrderHandler) Messages(c *gin.Context) {
	messages, err := h.orderService.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, messages)
}
