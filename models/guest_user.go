package models

import "time"

// GuestUser identifies an anonymous shopper through the guest-id cookie.
type GuestUser struct {
	Base
	ExpirationDate time.Time `gorm:"index;not null" json:"expirationDate"`
}
