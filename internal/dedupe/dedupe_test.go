package dedupe

import (
	"context"
	"testing"
)

func TestDisabledGuardNeverReportsSeen(t *testing.T) {
	guard := New("")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if guard.Seen(ctx, 42) {
			t.Fatal("disabled guard must treat every update as unseen")
		}
	}
	if err := guard.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestNilGuardIsSafe(t *testing.T) {
	var guard *Guard
	if guard.Seen(context.Background(), 1) {
		t.Fatal("nil guard must report unseen")
	}
	if err := guard.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
