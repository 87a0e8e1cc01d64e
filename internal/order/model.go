package order

import "time"

type DeliveryMode string

const (
	DeliveryCounter DeliveryMode = "counter"
	DeliveryTable   DeliveryMode = "table"
)

func ParseDeliveryMode(s string) (DeliveryMode, bool) {
	switch DeliveryMode(s) {
	case DeliveryCounter, DeliveryTable:
		return DeliveryMode(s), true
	}
	return "", false
}

// Item is a frozen line: the unit price is copied from the catalog at
// placement time and never tracks later price changes.
type Item struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Order struct {
	ID           int64        `json:"orderId"`
	UserID       int64        `json:"userId"`
	DeliveryMode DeliveryMode `json:"deliveryMode"`
	Total        float64      `json:"total"`
	Status       Status       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	Items        []Item       `json:"items,omitempty"`
}
