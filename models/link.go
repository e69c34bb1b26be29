package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Link struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"user_id" gorm:"index;not null"`
	OriginalURL    string     `json:"original_url" gorm:"size:2048;not null"`
	ShortCode      string     `json:"short_code" gorm:"uniqueIndex;size:128;not null"`
	DisplayName    string     `json:"display_name" gorm:"size:255;not null"`
	PasswordHash   *string    `json:"-" gorm:"size:255"`
	ExpirationDate *time.Time `json:"expiration_date"`
	Clicks         int64      `json:"clicks" gorm:"default:0"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	ClickEvents []Click `json:"-" gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE"`
}

// Expired reports whether the link's expiration date, if any, is past.
func (l *Link) Expired(now time.Time) bool {
	return l.ExpirationDate != nil && now.After(*l.ExpirationDate)
}

// PasswordProtected reports whether the link requires a password.
func (l *Link) PasswordProtected() bool {
	return l.PasswordHash != nil && *l.PasswordHash != ""
}

// CheckPassword reports whether the plaintext matches the link password.
// Links without a password accept anything.
func (l *Link) CheckPassword(password string) bool {
	if !l.PasswordProtected() {
		return true
	}
	if password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*l.PasswordHash), []byte(password)) == nil
}
