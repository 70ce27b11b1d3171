package order

import (
	"time"

	"storefront-be/internal/address"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

const DefaultPaymentMethod = "Cash on Delivery"

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// LineItem is the copy of a product taken when the order was placed.
type LineItem struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"updateTime"`
	EmailAddress string `json:"emailAddress"`
}

type Customer struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID              string          `json:"_id"`
	OrderNumber     string          `json:"orderNumber"`
	User            string          `json:"user"`
	Customer        *Customer       `json:"customer,omitempty"`
	OrderItems      []LineItem      `json:"orderItems"`
	ShippingAddress address.Address `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	Coupon          *string         `json:"coupon,omitempty"`
	Discount        float64         `json:"discount"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ItemInput is one requested line. Name, image and price sent by the client
// are ignored in favour of the live product row.
type ItemInput struct {
	Product  string
	Quantity int
}

// Totals are the amounts the client computed; they are only compared
// against the server figures.
type Totals struct {
	ItemsPrice    *float64
	ShippingPrice *float64
	TaxPrice      *float64
	TotalPrice    *float64
	Discount      *float64
}

type CreateInput struct {
	UserID          string
	Items           []ItemInput
	ShippingAddress *address.Address
	PaymentMethod   string
	Coupon          string
	ClientTotals    Totals
}
