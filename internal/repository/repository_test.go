package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

var testDBSeq atomic.Int64

// newTestStore opens a fresh in-memory database. cache=shared keeps gorm's
// pooled connections pointed at the same memory DB.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := NewDB(dsn)
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	return NewStore(db)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Users.Create(ctx, 111)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.Timezone != "UTC" {
		t.Fatalf("expected default timezone UTC, got %q", created.Timezone)
	}

	found, err := store.Users.FindByExternalID(ctx, 111)
	if err != nil {
		t.Fatalf("FindByExternalID failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, found.ID)
	}
}

func TestUserRepository_FindMissingReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Users.FindByExternalID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateCreateReturnsConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Users.Create(ctx, 222); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Users.Create(ctx, 222)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	n, err := store.Users.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one user row, got %d", n)
	}
}

func TestLogRepository_AppendRejectsEmptyText(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.Create(ctx, 111)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := store.Logs.Append(ctx, user.ID, text); !errors.Is(err, ErrEmptyText) {
			t.Fatalf("Append(%q): expected ErrEmptyText, got %v", text, err)
		}
	}

	n, err := store.Logs.CountByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountByUser failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no entries after rejected appends, got %d", n)
	}
}

func TestLogRepository_AppendAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.Create(ctx, 111)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entry, err := store.Logs.Append(ctx, user.ID, "2 eggs + dal")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if entry.Text != "2 eggs + dal" {
		t.Fatalf("unexpected stored text %q", entry.Text)
	}
	if entry.UserID != user.ID {
		t.Fatalf("entry bound to user %d, want %d", entry.UserID, user.ID)
	}

	if _, err := store.Logs.Append(ctx, user.ID, "30 min walk"); err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	n, err := store.Logs.CountByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountByUser failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 entries, got %d", n)
	}

	total, err := store.Logs.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 total entries, got %d", total)
	}
}

func TestStore_TransactionRollsBackOnError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := store.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.Users.Create(ctx, 333); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	if _, err := store.Users.FindByExternalID(ctx, 333); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected rollback to discard the user, got %v", err)
	}
}

func TestStore_TransactionCommits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx *Store) error {
		user, err := tx.Users.Create(ctx, 444)
		if err != nil {
			return err
		}
		_, err = tx.Logs.Append(ctx, user.ID, "first entry")
		return err
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	user, err := store.Users.FindByExternalID(ctx, 444)
	if err != nil {
		t.Fatalf("FindByExternalID failed: %v", err)
	}
	n, err := store.Logs.CountByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountByUser failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected committed entry, got count %d", n)
	}
}
