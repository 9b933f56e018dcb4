package warehouse

import (
	"time"

	_ "ctor-generator/primary"
)

//go:generate go run ctor-generator/cmd/ctor-generator gen .

// Address represents a physical or billing/shipping address.
type Address struct {
	ID         uint      `gorm:"primaryKey"  json:"id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Customer represents a store customer/user.
type Customer struct {
	ID                       uint       `gorm:"primaryKey"                            json:"id"`
	FirstName                string     `json:"first_name"`
	LastName                 string     `json:"last_name"`
	Email                    string     `gorm:"uniqueIndex"                           json:"email"`
	Phone                    string     `json:"phone"`
	PasswordHash             string     `json:"-"` // omitted in JSON
	DateOfBirth              *time.Time `json:"date_of_birth,omitempty"`
	DefaultBillingAddressID  *uint      `json:"default_billing_address_id,omitempty"`
	DefaultShippingAddressID *uint      `json:"default_shipping_address_id,omitempty"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product represents a sellable item in the store.
type Product struct {
	ID          uint    `gorm:"primaryKey"  json:"id"`
	SKU         string  `gorm:"uniqueIndex" json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"` // in cents (minor currency unit)
	Stock       int     `json:"stock"`
	IsActive    bool    `json:"is_active"`
	Weight      float64 `json:"weight"` // in grams, useful for shipping

	// Relationships
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order represents a customer's purchase. The order number, currency and
// shipping snapshot are fixed once the order exists.
//
// @primary.Constructor
type Order struct {
	id              uint
	orderNumber     string
	currency        string `ctor:"init=\"USD\""`
	shippingAddress Address
	createdAt       time.Time `ctor:"init=time.Now()"`

	CustomerID  uint   `json:"customer_id"`
	Status      string `json:"status"`       // e.g. "pending", "paid", "shipped", "cancelled"
	TotalAmount int64  `json:"total_amount"` // in cents

	// Relationships
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer"`
	Items    []OrderItem `gorm:"foreignKey:OrderID"    json:"items"`

	PlacedAt    *time.Time `json:"placed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ID returns the order ID.
func (o *Order) ID() uint { return o.id }

// OrderNumber returns the customer-facing order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// Currency returns the order currency.
func (o *Order) Currency() string { return o.currency }

// ShippingAddress returns the address snapshot taken at order time.
func (o *Order) ShippingAddress() Address { return o.shippingAddress }

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// OrderItem is a line item within an order.
type OrderItem struct {
	ID         uint  `gorm:"primaryKey"  json:"id"`
	OrderID    uint  `json:"order_id"`
	ProductID  uint  `json:"product_id"`
	Quantity   int   `json:"quantity"`
	UnitPrice  int64 `json:"unit_price"`  // price at time of purchase (in cents)
	TotalPrice int64 `json:"total_price"` // UnitPrice * Quantity

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID"   json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
