package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the state of an issued sale
type SaleStatus string

const (
	SaleStatusPaid SaleStatus = "paid"
)

func (s SaleStatus) String() string {
	return string(s)
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = SaleStatus(str)
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = SaleStatus(v)
	case []byte:
		*s = SaleStatus(string(v))
	case nil:
		*s = SaleStatusPaid
	}
	return nil
}
