package models

import "github.com/shopspring/decimal"

// Payment records a verified Razorpay payment against an order.
type Payment struct {
	Base
	OrderID      string          `gorm:"uniqueIndex;not null" json:"orderId"`
	RzrOrderID   string          `gorm:"not null" json:"razorpayOrderId"`
	RzrPaymentID string          `gorm:"uniqueIndex;not null" json:"razorpayPaymentId"`
	Method       string          `json:"method"`
	Via          *string         `json:"via"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
}
