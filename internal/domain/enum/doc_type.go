package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// DocType is the kind of identity document a customer is registered with
type DocType string

const (
	DocTypeDNI DocType = "DNI"
	DocTypeRUC DocType = "RUC"
)

// rucLength is the number of characters of a taxpayer registry number.
const rucLength = 11

// InferDocType guesses the document type from the document number: an
// 11-character number is a RUC, anything else is treated as a DNI.
func InferDocType(docNumber string) DocType {
	if len(docNumber) == rucLength {
		return DocTypeRUC
	}
	return DocTypeDNI
}

// IsValid reports whether t is a known document type.
func (t DocType) IsValid() bool {
	return t == DocTypeDNI || t == DocTypeRUC
}

func (t DocType) String() string {
	return string(t)
}

func (t DocType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *DocType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = DocType(strings.ToUpper(strings.TrimSpace(str)))
	return nil
}

func (t DocType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *DocType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = DocType(v)
	case []byte:
		*t = DocType(string(v))
	case nil:
		*t = DocTypeDNI
	}
	return nil
}
