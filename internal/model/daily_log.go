package model

import "time"

// DailyLogEntry is one /log record. Entries are append-only: this service
// never updates or deletes them, it only inserts and counts.
type DailyLogEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Date      time.Time `gorm:"type:date"`
	Text      string    `gorm:"not null"`
	CreatedAt time.Time
}
