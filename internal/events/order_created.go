package events

import "time"

type OrderCreated struct {
	EventID      string      `json:"eventId"`
	EventType    string      `json:"eventType"`
	OrderID      int64       `json:"orderId"`
	UserID       int64       `json:"userId"`
	DeliveryMode string      `json:"deliveryMode"`
	Total        float64     `json:"total"`
	Items        []OrderItem `json:"items"`
	Timestamp    time.Time   `json:"timestamp"`
}

type OrderItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}
