package modules

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalAssetsRoundTrip(t *testing.T) {
	store := NewLocalAssets(t.TempDir())

	payload := []byte("png bytes")
	url, id, err := store.Upload(payload)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != id {
		t.Fatalf("local strategy should address assets by path, got url=%q id=%q", url, id)
	}

	written, err := os.ReadFile(id)
	if err != nil {
		t.Fatalf("read stored asset: %v", err)
	}
	if !bytes.Equal(written, payload) {
		t.Fatal("stored asset differs from upload payload")
	}

	if err := store.Destroy(id); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, err := os.Stat(id); !os.IsNotExist(err) {
		t.Fatal("asset file should be gone after destroy")
	}
}

func TestLocalAssetsDistinctNames(t *testing.T) {
	store := NewLocalAssets(t.TempDir())

	_, first, err := store.Upload([]byte("a"))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	_, second, err := store.Upload([]byte("b"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if first == second {
		t.Fatalf("uploads should not collide, both got %q", first)
	}
}

func TestLocalAssetsUploadFailure(t *testing.T) {
	store := NewLocalAssets(filepath.Join(t.TempDir(), "missing", "dir"))

	if _, _, err := store.Upload([]byte("x")); !errors.Is(err, ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}
}
