package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Subscribed browsers receive the errors surfaced by the error store.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	Locale    string    `gorm:"size:16"`
	CreatedAt time.Time `gorm:"not null"`
}
