package db

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "gatekeeper-db-test")
	if err != nil {
		os.Exit(1)
	}
	SetPath(filepath.Join(dir, "test.db"))

	code := m.Run()

	CloseDB()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestSubscribersRoundTrip(t *testing.T) {
	want := []int64{101, 202, 303}
	if err := SaveSubscribers(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadSubscribers()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loaded %v, want %v", got, want)
	}
}

func TestSaveOverwritesPreviousSet(t *testing.T) {
	if err := SaveAdmins([]int64{1, 2, 3}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SaveAdmins([]int64{2}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := LoadAdmins()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, []int64{2}) {
		t.Fatalf("loaded %v, want [2]", got)
	}
}

func TestLoadEmptySet(t *testing.T) {
	got, err := LoadSubscribers()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := SaveSubscribers(nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}
	if got, err = LoadSubscribers(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestAuditAppendAndRecent(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, action := range []string{"issued /start", "attempted captcha", "verified"} {
		err := AppendAudit(AuditEntry{
			ID:        string(rune('a' + i)),
			UserID:    int64(1000 + i),
			Action:    action,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := RecentAudit(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Action != "verified" || entries[1].Action != "attempted captcha" {
		t.Fatalf("wrong order: %q then %q", entries[0].Action, entries[1].Action)
	}
	if !entries[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("timestamp not preserved: %v", entries[0].Timestamp)
	}
}

func TestRecentAuditLargerThanLog(t *testing.T) {
	entries, err := RecentAudit(10000)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Fatal("entries should be newest first")
		}
	}
}
