package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restaurant-pos/internal/application/service"
	"github.com/sangkips/restaurant-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/restaurant-pos/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService    *service.OrderService
	checkoutService *service.CheckoutService
	basePath        string
}

// NewOrderHandler creates a new order handler. basePath prefixes the
// location of created sales, e.g. "/api/v1".
func NewOrderHandler(orderService *service.OrderService, checkoutService *service.CheckoutService, basePath string) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		checkoutService: checkoutService,
		basePath:        basePath,
	}
}

// Get handles retrieving an order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", response.NewOrderResponse(order))
}

// Cancel handles cancelling an unpaid order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}

// Checkout handles paying an order and issuing its receipt
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CheckoutInput{
		OrderID:  id,
		UserID:   *userID,
		Type:     req.Type,
		Payments: make([]service.PaymentInput, 0, len(req.Payments)),
	}
	if cr := req.Customer; cr != nil {
		input.Customer = &service.CustomerInput{
			DocType:   cr.DocType,
			DocNumber: cr.DocNumber,
			Name:      cr.Name,
			Email:     deref(cr.Email),
			Phone:     deref(cr.Phone),
			Address:   deref(cr.Address),
		}
	}
	for _, p := range req.Payments {
		input.Payments = append(input.Payments, service.PaymentInput{
			Method:    p.Method,
			Amount:    p.Amount,
			Reference: p.Reference,
		})
	}

	sale, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	res := response.NewCheckoutResponse(sale, h.basePath)
	c.Header("Location", res.Location)
	response.Created(c, "Checkout completed successfully", res)
}
