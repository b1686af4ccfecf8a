package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories over one database handle so a logical
// operation can run them inside a single transaction.
type Store struct {
	db    *gorm.DB
	Users *UserRepository
	Logs  *LogRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:    db,
		Users: NewUserRepository(db),
		Logs:  NewLogRepository(db),
	}
}

// Transaction runs fn with a transaction-scoped Store. Commit happens only
// when fn returns nil; any error or panic rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(NewStore(txdb))
	})
}
