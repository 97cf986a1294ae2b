package models

import "time"

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

// Next returns the status an order moves to when processed. Delivered is terminal.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case StatusProcessing:
		return StatusShipped
	default:
		return StatusDelivered
	}
}

type ShippingInfo struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Country string `json:"country" validate:"required"`
	PinCode int    `json:"pinCode" validate:"required"`
}

type OrderItem struct {
	Name      string  `json:"name" validate:"required"`
	Photo     string  `json:"photo"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	ProductID string  `json:"productId" validate:"required"`
}

type Order struct {
	ID              string       `json:"_id"`
	ShippingInfo    ShippingInfo `json:"shippingInfo"`
	User            string       `json:"user"`
	Subtotal        float64      `json:"subtotal"`
	Tax             float64      `json:"tax"`
	ShippingCharges float64      `json:"shippingCharges"`
	Discount        float64      `json:"discount"`
	Total           float64      `json:"total"`
	Status          OrderStatus  `json:"status"`
	OrderItems      []OrderItem  `json:"orderItems"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func (o Order) Created() time.Time { return o.CreatedAt }

// ProductIDs lists the product of every line item, in order.
func (o Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		ids = append(ids, item.ProductID)
	}
	return ids
}

type OrderQuery struct {
	User        string
	Status      OrderStatus
	Created     TimeRange
	NewestFirst bool
	Limit       int
}
