package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"accountability-coach/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByExternalID returns the user owning the given chat id, or ErrNotFound.
func (r *UserRepository) FindByExternalID(ctx context.Context, externalChatID int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("external_chat_id = ?", externalChatID).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// Create inserts a fresh user row. A concurrent insert for the same chat id
// loses the unique-index race and gets ErrConflict; the caller re-fetches.
func (r *UserRepository) Create(ctx context.Context, externalChatID int64) (*model.User, error) {
	user := model.User{
		ExternalChatID: externalChatID,
		Timezone:       "UTC",
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
