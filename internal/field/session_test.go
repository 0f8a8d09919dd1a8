package field

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tempo-cli/internal/adapter"
)

func TestSession_ExpiresQuery(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY", QueryTimeout: 20 * time.Millisecond})
	s := NewSession(f, adapter.Date{})
	defer s.Close()

	s.Apply(func(f *Field, st State) State { return f.SetSelection(st, 0) })
	st := s.HandleKey(Key{Code: KeyRune, Rune: '1'})
	if st.Query == nil {
		t.Fatalf("expected a pending query")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.State().Query != nil {
		if time.Now().After(deadline) {
			t.Fatalf("query never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	st = s.HandleKey(Key{Code: KeyRune, Rune: '2'})
	if got := st.Sections[0].Value; got != "02" {
		t.Fatalf("expected a fresh query after expiry, got %q", got)
	}
}

func TestSession_ConcurrentQueriesStillExpire(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY", QueryTimeout: 20 * time.Millisecond})
	s := NewSession(f, adapter.Date{})
	defer s.Close()

	retype := func(f *Field, st State) State {
		st = f.ExpireQuery(st, st.QueryGen)
		return f.TypeKey(f.SetSelection(st, 0), '1')
	}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Apply(retype)
		}()
	}
	wg.Wait()
	if s.State().Query == nil {
		t.Fatalf("expected a pending query")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.State().Query != nil {
		if time.Now().After(deadline) {
			t.Fatalf("the newest query never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSession_NewKeySupersedesTimer(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY", QueryTimeout: time.Hour})
	s := NewSession(f, adapter.Date{})
	defer s.Close()

	s.Apply(func(f *Field, st State) State { return f.SetSelection(st, 0) })
	s.HandleKey(Key{Code: KeyRune, Rune: '1'})
	st := s.HandleKey(Key{Code: KeyRune, Rune: '2'})
	if got := st.Sections[0].Value; got != "12" {
		t.Fatalf("expected 12, got %q", got)
	}
	if st.Query != nil {
		t.Fatalf("expected the query to end after advancing, got %+v", st.Query)
	}
}

func TestSession_OnChange(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	s := NewSession(f, adapter.DateOf(at(2024, time.March, 15, 0, 0)))
	defer s.Close()

	var calls atomic.Int32
	var last adapter.Date
	s.OnChange(func(prev, next State) {
		calls.Add(1)
		last = next.Value
	})

	s.HandleKey(Key{Code: KeyRight})
	if calls.Load() != 0 {
		t.Fatalf("expected no change event for a selection move")
	}
	s.HandleKey(Key{Code: KeyUp})
	if calls.Load() != 1 {
		t.Fatalf("expected one change event, got %d", calls.Load())
	}
	if !last.Equal(adapter.DateOf(at(2024, time.April, 15, 0, 0))) {
		t.Fatalf("unexpected value %v", last)
	}
}

func TestSession_Sync(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	s := NewSession(f, adapter.Date{})
	defer s.Close()

	v := adapter.DateOf(at(2025, time.December, 25, 0, 0))
	if err := s.Sync(v, true); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !s.Value().Equal(v) {
		t.Fatalf("expected controlled value %v, got %v", v, s.Value())
	}
	if got := f.Text(s.State()); got != "12/25/2025" {
		t.Fatalf("unexpected text %q", got)
	}

	err := s.Sync(v, false)
	if !errors.Is(err, ErrControlledModeChanged) {
		t.Fatalf("expected ErrControlledModeChanged, got %v", err)
	}
}
