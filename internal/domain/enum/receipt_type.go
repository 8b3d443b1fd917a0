package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// ReceiptType is the kind of fiscal document issued for a sale
type ReceiptType string

const (
	ReceiptTypeBoleta  ReceiptType = "boleta"
	ReceiptTypeFactura ReceiptType = "factura"
)

// Receipt series per document kind. Each series is numbered independently.
const (
	SeriesBoleta  = "B001"
	SeriesFactura = "F001"
)

// IsValid reports whether t is a known receipt type.
func (t ReceiptType) IsValid() bool {
	return t == ReceiptTypeBoleta || t == ReceiptTypeFactura
}

// Series returns the numbering series for the receipt type.
func (t ReceiptType) Series() string {
	if t == ReceiptTypeFactura {
		return SeriesFactura
	}
	return SeriesBoleta
}

func (t ReceiptType) String() string {
	return string(t)
}

func (t ReceiptType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *ReceiptType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = ReceiptType(strings.ToLower(strings.TrimSpace(str)))
	return nil
}

func (t ReceiptType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ReceiptType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = ReceiptType(v)
	case []byte:
		*t = ReceiptType(string(v))
	case nil:
		*t = ReceiptTypeBoleta
	}
	return nil
}
