package request

import "github.com/sangkips/restaurant-pos/internal/domain/enum"

// CreateCustomerRequest represents a customer registration request
type CreateCustomerRequest struct {
	DocType   enum.DocType `json:"doc_type"`
	DocNumber string       `json:"doc_number"`
	Name      string       `json:"name"`
	Email     *string      `json:"email"`
	Phone     *string      `json:"phone"`
	Address   *string      `json:"address"`
}

// SearchCustomerRequest represents the customer lookup query
type SearchCustomerRequest struct {
	DocNumber string `form:"doc_number"`
}
