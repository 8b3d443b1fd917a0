package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restaurant-pos/internal/application/service"
	"github.com/sangkips/restaurant-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/restaurant-pos/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Search handles looking up a customer by document number
func (h *CustomerHandler) Search(c *gin.Context) {
	var req request.SearchCustomerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.SearchByDocNumber(c.Request.Context(), req.DocNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Customer not found"
	if result.Found {
		message = "Customer found"
	}
	response.OK(c, message, gin.H{
		"found":    result.Found,
		"customer": response.NewCustomerResponse(result.Customer),
	})
}

// Create handles registering a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		DocType:   req.DocType,
		DocNumber: req.DocNumber,
		Name:      req.Name,
		Email:     deref(req.Email),
		Phone:     deref(req.Phone),
		Address:   deref(req.Address),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", response.NewCustomerResponse(customer))
}
