// Package admin defines the administrator account model.
package admin

import "time"

// Admin is a backend administrator. There is normally exactly one,
// reconciled against the configured credentials on startup.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims are the validated identity attached to an admin session token.
type Claims struct {
	Username string `json:"username"`
}
