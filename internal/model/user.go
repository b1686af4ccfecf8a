package model

import "time"

// User is the durable identity behind a Telegram chat. Exactly one row
// exists per external chat id; the unique index is what makes first-contact
// creation race-safe.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	ExternalChatID int64  `gorm:"uniqueIndex;not null"`
	Timezone       string `gorm:"size:64;default:UTC"`
	CreatedAt      time.Time
}
