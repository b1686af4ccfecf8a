package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"accountability-coach/internal/model"
)

// LogRepository handles the append-only daily log entries.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Append stores one log entry dated today. Blank text is rejected with
// ErrEmptyText before anything touches the database.
func (r *LogRepository) Append(ctx context.Context, userID uint, text string) (*model.DailyLogEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	entry := model.DailyLogEntry{
		UserID: userID,
		Date:   time.Now().Truncate(24 * time.Hour),
		Text:   text,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("append log entry: %w", err)
	}
	return &entry, nil
}

func (r *LogRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.DailyLogEntry{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count log entries: %w", err)
	}
	return n, nil
}

func (r *LogRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.DailyLogEntry{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count all log entries: %w", err)
	}
	return n, nil
}
