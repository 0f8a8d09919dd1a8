package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) *ValueStore {
	t.Helper()
	s, err := OpenValueStore(context.Background(), filepath.Join(t.TempDir(), "values.sqlite"))
	if err != nil {
		t.Fatalf("OpenValueStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestValueStore_PutGetList(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	clock := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	due := Entry{Name: "due", Kind: "date", Format: "MM/DD/YYYY", Locale: "en", Value: "2025-12-25T00:00:00Z", State: StateValid}
	if _, err := s.Put(ctx, due); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := s.Put(ctx, Entry{Name: "alarm", Kind: "time", Format: "HH:mm", Locale: "en", State: StateEmpty}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "due")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	due.UpdatedAt = clock
	if diff := cmp.Diff(due, got); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, e := range list {
		names = append(names, e.Name)
	}
	if diff := cmp.Diff([]string{"alarm", "due"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestValueStore_History(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	writes := []Entry{
		{Name: "due", Kind: "date", Value: "2025-01-01T00:00:00Z", State: StateValid},
		{Name: "due", Kind: "date", State: StateInvalid},
		{Name: "due", Kind: "date", Value: "2025-02-01T00:00:00Z", State: StateValid},
	}
	for _, w := range writes {
		if _, err := s.Put(ctx, w); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	hist, err := s.History(ctx, "due", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	var states []string
	for _, h := range hist {
		states = append(states, h.State)
	}
	if diff := cmp.Diff([]string{StateValid, StateInvalid, StateValid}, states); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	if hist[0].Value != "2025-02-01T00:00:00Z" {
		t.Fatalf("expected newest first, got %q", hist[0].Value)
	}

	limited, err := s.History(ctx, "due", 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected one history entry, got %v %v", limited, err)
	}

	got, err := s.Get(ctx, "due")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Value != "2025-02-01T00:00:00Z" {
		t.Fatalf("expected latest value, got %q", got.Value)
	}
}

func TestValueStore_DeleteAndNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.Put(ctx, Entry{Name: "due", State: StateEmpty}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "due"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "due"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "due"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
	if hist, _ := s.History(ctx, "due", 0); len(hist) != 0 {
		t.Fatalf("expected history removed, got %v", hist)
	}
}

func TestValueStore_RejectsBadEntries(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.Put(ctx, Entry{Name: " ", State: StateEmpty}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if _, err := s.Put(ctx, Entry{Name: "due", State: "maybe"}); err == nil {
		t.Fatalf("expected unknown state to fail")
	}
}

func TestValueStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "values.sqlite")
	s, err := OpenValueStore(ctx, path)
	if err != nil {
		t.Fatalf("OpenValueStore: %v", err)
	}
	if _, err := s.Put(ctx, Entry{Name: "due", State: StateEmpty}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	_ = s.Close()

	s, err = OpenValueStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, "due"); err != nil {
		t.Fatalf("expected value to survive reopen: %v", err)
	}
}
