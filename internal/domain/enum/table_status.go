package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TableStatus represents the occupancy of a dining table
type TableStatus int

const (
	TableStatusFree     TableStatus = 0
	TableStatusOccupied TableStatus = 1
)

func (s TableStatus) String() string {
	switch s {
	case TableStatusFree:
		return "free"
	case TableStatusOccupied:
		return "occupied"
	}
	return fmt.Sprintf("TableStatus(%d)", int(s))
}

func (s TableStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TableStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "free", "libre":
		*s = TableStatusFree
	case "occupied", "ocupada":
		*s = TableStatusOccupied
	default:
		return fmt.Errorf("unknown table status %q", str)
	}
	return nil
}

func (s TableStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TableStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TableStatusFree
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TableStatus(v)
	case int32:
		*s = TableStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into TableStatus", value)
	}
	return nil
}
