package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the restaurant header printed at the top of a ticket.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem is a single product line on a printed ticket.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// ReceiptPayment is a tender line on a printed ticket.
type ReceiptPayment struct {
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
}

// Receipt is the printable form of a sale. It is composed at print time and
// never persisted.
type Receipt struct {
	Header      ReceiptHeader    `json:"header"`
	Title       string           `json:"title"`
	Number      string           `json:"number"`
	Date        string           `json:"date"`
	Cashier     string           `json:"cashier,omitempty"`
	Table       string           `json:"table,omitempty"`
	Customer    string           `json:"customer,omitempty"`
	CustomerDoc string           `json:"customer_doc,omitempty"`
	Items       []ReceiptItem    `json:"items"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	Tax         decimal.Decimal  `json:"tax"`
	Total       decimal.Decimal  `json:"total"`
	Payments    []ReceiptPayment `json:"payments,omitempty"`
}
