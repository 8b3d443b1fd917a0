package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// PaymentMethod represents how a payment line was tendered
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodYape         PaymentMethod = "yape"
	PaymentMethodPlin         PaymentMethod = "plin"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOther        PaymentMethod = "other"
)

var paymentMethodAliases = map[string]PaymentMethod{
	"efectivo":      PaymentMethodCash,
	"tarjeta":       PaymentMethodCard,
	"transferencia": PaymentMethodBankTransfer,
	"otro":          PaymentMethodOther,
}

// NormalizePaymentMethod lowercases s and resolves legacy aliases. Unknown
// values are returned unchanged so that validation can report them.
func NormalizePaymentMethod(s string) PaymentMethod {
	s = strings.ToLower(strings.TrimSpace(s))
	if m, ok := paymentMethodAliases[s]; ok {
		return m
	}
	return PaymentMethod(s)
}

// IsValid reports whether m is one of the accepted tender types.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodYape,
		PaymentMethodPlin, PaymentMethodBankTransfer, PaymentMethodOther:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = NormalizePaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	case nil:
		*m = PaymentMethodOther
	}
	return nil
}
