package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the lifecycle state of a restaurant order
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusInProgress OrderStatus = 1
	OrderStatusServed     OrderStatus = 2
	OrderStatusPaid       OrderStatus = 3
	OrderStatusCancelled  OrderStatus = 4
)

var orderStatusNames = [...]string{"pending", "in_progress", "served", "paid", "cancelled"}

// orderStatusAliases maps the values used by the legacy front desk to statuses.
var orderStatusAliases = map[string]OrderStatus{
	"pendiente":  OrderStatusPending,
	"en_proceso": OrderStatusInProgress,
	"servido":    OrderStatusServed,
	"pagado":     OrderStatusPaid,
	"cancelado":  OrderStatusCancelled,
}

func (s OrderStatus) String() string {
	if s < 0 || int(s) >= len(orderStatusNames) {
		return fmt.Sprintf("OrderStatus(%d)", int(s))
	}
	return orderStatusNames[s]
}

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// ParseOrderStatus accepts a status name or one of its legacy aliases.
func ParseOrderStatus(str string) (OrderStatus, bool) {
	for i, name := range orderStatusNames {
		if name == str {
			return OrderStatus(i), true
		}
	}
	s, ok := orderStatusAliases[str]
	return s, ok
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	parsed, ok := ParseOrderStatus(str)
	if !ok {
		return fmt.Errorf("unknown order status %q", str)
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int32:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	return nil
}
