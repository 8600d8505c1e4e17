// Package share defines the persistent share-link model.
package share

import "time"

// ShareLink maps a public watch hash to a series. A nil ExpiresAt means
// the link never expires.
type ShareLink struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Hash      string     `gorm:"size:100;uniqueIndex;not null" json:"hash"`
	SeriesID  string     `gorm:"size:50;index;not null" json:"series_id"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}
