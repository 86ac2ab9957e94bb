package request

import (
	"github.com/shopspring/decimal"
)

// CreateOrder is the order-creation payload. Line items carry only id and
// quantity; denormalized cart fields never go over the wire.
type CreateOrder struct {
	UserID  int64           `json:"userId"`
	Freight decimal.Decimal `json:"freight"`
	Items   []OrderItem     `json:"items"`
}

type OrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
