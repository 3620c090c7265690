package modules

import (
	"errors"
	"testing"
	"time"
)

type captchaRecorder struct {
	released []string
	expired  []int64
}

func newTestStore() (*CaptchaStore, *captchaRecorder) {
	rec := &captchaRecorder{}
	store := NewCaptchaStore(
		func(assetID string) { rec.released = append(rec.released, assetID) },
		func(userID int64) { rec.expired = append(rec.expired, userID) },
	)
	return store, rec
}

func TestSubmitCorrectRemovesSession(t *testing.T) {
	store, rec := newTestStore()
	store.Begin(1, "12345", "asset-1")

	result, _, err := store.Submit(1, "12345")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result != SubmitVerified {
		t.Fatalf("expected SubmitVerified, got %v", result)
	}
	if store.Active(1) {
		t.Fatal("session should be removed after verification")
	}
	if len(rec.released) != 1 || rec.released[0] != "asset-1" {
		t.Fatalf("expected asset-1 released, got %v", rec.released)
	}

	if _, _, err := store.Submit(1, "12345"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after verification, got %v", err)
	}
}

func TestSubmitWrongCountsAttempts(t *testing.T) {
	store, rec := newTestStore()
	store.Begin(1, "12345", "asset-1")

	for i, wantLeft := range []int{2, 1} {
		result, left, err := store.Submit(1, "00000")
		if err != nil {
			t.Fatalf("wrong submit %d: %v", i+1, err)
		}
		if result != SubmitWrong {
			t.Fatalf("wrong submit %d: expected SubmitWrong, got %v", i+1, result)
		}
		if left != wantLeft {
			t.Fatalf("wrong submit %d: expected %d attempts left, got %d", i+1, wantLeft, left)
		}
		if !store.Active(1) {
			t.Fatalf("session should survive wrong submit %d", i+1)
		}
	}

	result, _, err := store.Submit(1, "00000")
	if err != nil {
		t.Fatalf("third wrong submit: %v", err)
	}
	if result != SubmitLocked {
		t.Fatalf("expected SubmitLocked on third wrong answer, got %v", result)
	}
	if store.Active(1) {
		t.Fatal("session should be removed after locking")
	}
	if len(rec.released) != 1 || rec.released[0] != "asset-1" {
		t.Fatalf("expected asset-1 released on lock, got %v", rec.released)
	}

	if _, _, err := store.Submit(1, "12345"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after locking, got %v", err)
	}
}

func TestSubmitWithoutSession(t *testing.T) {
	store, _ := newTestStore()
	if _, _, err := store.Submit(42, "12345"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestBeginReleasesReplacedAsset(t *testing.T) {
	store, rec := newTestStore()
	store.Begin(1, "11111", "asset-old")
	store.Begin(1, "22222", "asset-new")

	if len(rec.released) != 1 || rec.released[0] != "asset-old" {
		t.Fatalf("expected asset-old released on replacement, got %v", rec.released)
	}

	// only the replacement session counts
	result, _, err := store.Submit(1, "22222")
	if err != nil {
		t.Fatalf("submit against replacement: %v", err)
	}
	if result != SubmitVerified {
		t.Fatalf("expected SubmitVerified, got %v", result)
	}
}

func TestDropReleasesAsset(t *testing.T) {
	store, rec := newTestStore()
	store.Begin(1, "12345", "asset-1")
	store.Drop(1)

	if store.Active(1) {
		t.Fatal("session should be gone after Drop")
	}
	if len(rec.released) != 1 || rec.released[0] != "asset-1" {
		t.Fatalf("expected asset-1 released, got %v", rec.released)
	}
}

func TestSweepExpiresStaleSessions(t *testing.T) {
	store, rec := newTestStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Begin(1, "11111", "asset-1")

	current = current.Add(captchaTimeout / 2)
	store.Begin(2, "22222", "asset-2")

	current = current.Add(captchaTimeout/2 + time.Second)
	store.sweep()

	if store.Active(1) {
		t.Fatal("stale session should be evicted")
	}
	if !store.Active(2) {
		t.Fatal("fresh session should survive the sweep")
	}
	if len(rec.released) != 1 || rec.released[0] != "asset-1" {
		t.Fatalf("expected asset-1 released, got %v", rec.released)
	}
	if len(rec.expired) != 1 || rec.expired[0] != 1 {
		t.Fatalf("expected user 1 notified, got %v", rec.expired)
	}

	// a stale token for the evicted session no longer matches anything
	if _, _, err := store.Submit(1, "11111"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for evicted session, got %v", err)
	}
}

func TestSweepIgnoresFreshSessions(t *testing.T) {
	store, rec := newTestStore()
	store.Begin(1, "12345", "asset-1")
	store.sweep()

	if !store.Active(1) {
		t.Fatal("fresh session must not be evicted")
	}
	if len(rec.released) != 0 || len(rec.expired) != 0 {
		t.Fatalf("unexpected cleanup: released=%v expired=%v", rec.released, rec.expired)
	}
}
