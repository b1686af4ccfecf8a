package service

import (
	"context"
	log "log/slog"

	"accountability-coach/internal/repository"
)

// StatsService emits periodic activity snapshots to the log stream. It is
// operational visibility only and never messages users.
type StatsService struct {
	store *repository.Store
}

func NewStatsService(store *repository.Store) *StatsService {
	return &StatsService{store: store}
}

// Snapshot logs the current user and entry totals.
func (s *StatsService) Snapshot(ctx context.Context) error {
	users, err := s.store.Users.Count(ctx)
	if err != nil {
		return err
	}
	entries, err := s.store.Logs.CountAll(ctx)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "activity snapshot",
		log.Int64("users", users),
		log.Int64("log_entries", entries),
	)
	return nil
}
