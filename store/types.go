package store

import (
	"time"

	_ "ctor-generator/primary"
)

//go:generate go run ctor-generator/cmd/ctor-generator gen .

// Product represents an individual item available for sale.
// We use int64 for Price to represent cents (lowest currency unit) to avoid floating-point errors.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Inventory   int       `json:"inventory_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Order represents a transaction made by a customer. Its identity, customer
// and order time are fixed when it is created.
//
// @primary.Constructor
type Order struct {
	id         int64
	customerID int64
	orderedAt  time.Time
	items      []OrderItem `ctor:"init"`

	Status     OrderStatus
	TotalCents int64
}

// ID returns the order ID.
func (o *Order) ID() int64 { return o.id }

// CustomerID returns the ID of the ordering customer.
func (o *Order) CustomerID() int64 { return o.customerID }

// OrderedAt returns the order time.
func (o *Order) OrderedAt() time.Time { return o.orderedAt }

// Items returns the order lines.
func (o *Order) Items() []OrderItem { return o.items }

// AddItem appends a line and updates the total.
func (o *Order) AddItem(item *OrderItem) {
	o.items = append(o.items, *item)
	o.TotalCents += item.Total()
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
//
// @primary.Constructor
type OrderItem struct {
	productID int64
	unitPrice int64

	Name     string
	Quantity int
}

// ProductID returns the ID of the ordered product.
func (i *OrderItem) ProductID() int64 { return i.productID }

// Total returns the line total in cents.
func (i *OrderItem) Total() int64 { return i.unitPrice * int64(i.Quantity) }

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
