package models

// Cart belongs to exactly one of a user or a guest.
type Cart struct {
	Base
	UserID      *string    `gorm:"uniqueIndex" json:"userId"`
	GuestUserID *string    `gorm:"uniqueIndex" json:"guestUserId"`
	CartItems   []CartItem `json:"cartItems"`
}

// CartItem references a catalog product, or carries a free-form
// CustomProduct (fasteners, cables, connectors) with ProductID unset.
type CartItem struct {
	Base
	CartID        string   `gorm:"index;not null" json:"cartId"`
	ProductID     *string  `gorm:"index" json:"productId"`
	Product       *Product `json:"product,omitempty"`
	Quantity      int      `gorm:"not null" json:"quantity"`
	Color         *string  `json:"color"`
	CustomProduct JSONMap  `gorm:"type:jsonb;serializer:json" json:"customProduct"`
}

func (i CartItem) IsCustom() bool {
	return i.CustomProduct != nil
}
