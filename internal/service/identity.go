package service

import (
	"context"
	"errors"
	"fmt"

	"accountability-coach/internal/model"
	"accountability-coach/internal/repository"
)

// UserStore is the slice of the user repository the resolver needs.
type UserStore interface {
	FindByExternalID(ctx context.Context, externalChatID int64) (*model.User, error)
	Create(ctx context.Context, externalChatID int64) (*model.User, error)
}

// IdentityService maps external chat ids onto durable users, creating a
// row on first contact.
type IdentityService struct {
	users UserStore
}

func NewIdentityService(users UserStore) *IdentityService {
	return &IdentityService{users: users}
}

// Resolve returns the user for the chat id, creating one if absent. When
// two first-contact updates race, the loser's insert hits the unique index
// and comes back as a conflict; the winner's row is re-read and returned,
// so both callers end up with the same identity.
func (s *IdentityService) Resolve(ctx context.Context, externalChatID int64) (*model.User, error) {
	user, err := s.users.FindByExternalID(ctx, externalChatID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user, err = s.users.Create(ctx, externalChatID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrConflict) {
		return nil, err
	}

	user, err = s.users.FindByExternalID(ctx, externalChatID)
	if err != nil {
		return nil, fmt.Errorf("re-read user after conflict: %w", err)
	}
	return user, nil
}
