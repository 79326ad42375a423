package models

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Razorpay order created, awaiting payment
	OrderStatusPaid      OrderStatus = "paid"      // Signature verified
	OrderStatusFailed    OrderStatus = "failed"    // Gateway reported failure
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled by staff
)

type Order struct {
	Base
	OrderRef   string          `gorm:"uniqueIndex;not null" json:"orderId"`
	UserID     string          `gorm:"index;not null" json:"userId"`
	Status     OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Receipt    string          `json:"receipt"`
	RzrOrderID string          `gorm:"index" json:"razorpayOrderId"`
	Address    Address         `gorm:"embedded;embeddedPrefix:ship_" json:"address"`
	OrderItems []OrderItem     `json:"orderItems"`
	Payment    *Payment        `json:"payment,omitempty"`
}

type Address struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country"`
}

type OrderItem struct {
	Base
	OrderID       string          `gorm:"index;not null" json:"orderId"`
	ProductID     *string         `json:"productId"`
	CustomProduct JSONMap         `gorm:"type:jsonb;serializer:json" json:"customProduct,omitempty"`
	Title         string          `json:"title"`
	Color         *string         `json:"color"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
