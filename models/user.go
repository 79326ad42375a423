package models

type User struct {
	Base
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Provider     string `gorm:"default:'credentials'" json:"provider"`
	Picture      string `json:"picture"`
}
