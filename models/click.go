package models

import (
	"time"
)

// Click is one recorded visit to a link. Rows are append-only and
// removed only by cascade when the parent link is deleted.
type Click struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LinkID    uint      `json:"link_id" gorm:"index;not null"`
	IPAddress string    `json:"ip_address" gorm:"size:64"`
	Referrer  string    `json:"referrer" gorm:"size:512;default:Direct"`
	UserAgent string    `json:"user_agent" gorm:"size:512"`
	ClickedAt time.Time `json:"clicked_at"`
}
