package models

import "time"

// OrderID identifies an order in the remote service.
type OrderID int64

// OrderStatus is the remote service's order lifecycle state.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentMethod is the closed set of supported payment options.
type PaymentMethod string

const (
	CashOnDelivery PaymentMethod = "cashOnDelivery"
	OnlineCard     PaymentMethod = "onlineCard"
)

// Valid reports whether pm is one of the supported payment methods.
func (pm PaymentMethod) Valid() bool {
	return pm == CashOnDelivery || pm == OnlineCard
}

// DeliveryAddress is where an order ships. Name, phone, street and city are
// required; postal code is optional and country defaults server-side.
type DeliveryAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
}

// OrderItem is one line of a placed order: a product snapshot taken at
// checkout time plus the unit price and line total that were charged.
type OrderItem struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
	PricePKR int64   `json:"pricePkr"`
	TotalPKR int64   `json:"totalPkr"`
}

// Order is a placed order as returned by the remote service.
type Order struct {
	ID              OrderID         `json:"id"`
	Status          OrderStatus     `json:"status"`
	DeliveryAddress DeliveryAddress `json:"deliveryAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	User            string          `json:"user"`
	TotalAmountPKR  int64           `json:"totalAmountPkr"`
	Timestamp       time.Time       `json:"timestamp"`
	Items           []OrderItem     `json:"items"`
}
