package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoreUploadAndList(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files/")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	url, err := store.Upload("budgets/club-1/7/budget.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Failed to upload: %v", err)
	}
	if url != "/files/budgets/club-1/7/budget.pdf" {
		t.Errorf("Unexpected public URL: %q", url)
	}

	entries, err := store.List("budgets/club-1/7")
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "budget.pdf" || entries[0].Size != 4 {
		t.Errorf("Unexpected entry: %+v", entries[0])
	}
	if entries[0].PublicURL != url {
		t.Errorf("Expected listing URL to match upload URL, got %q", entries[0].PublicURL)
	}
}

func TestLocalStoreListMissingPrefix(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	entries, err := store.List("receipts/nobody/1")
	if err != nil {
		t.Fatalf("Expected missing prefix to list empty, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestLocalStoreUploadOverwrites(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/files")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, err := store.Upload("assets/c/logo.png", []byte("old"), "image/png"); err != nil {
		t.Fatalf("Failed to upload: %v", err)
	}
	if _, err := store.Upload("assets/c/logo.png", []byte("newer"), "image/png"); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "assets", "c", "logo.png"))
	if err != nil {
		t.Fatalf("Failed to read object: %v", err)
	}
	if string(data) != "newer" {
		t.Errorf("Expected overwrite to win, got %q", data)
	}
}

func TestLocalStoreClampsEscapingPaths(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/files")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	// Paths trying to climb out of the root are anchored back inside it.
	if _, err := store.Upload("../outside.txt", []byte("x"), "text/plain"); err != nil {
		t.Fatalf("Failed to upload: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "outside.txt")); err != nil {
		t.Errorf("Expected object inside the root, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "outside.txt")); err == nil {
		t.Error("Object escaped the storage root")
	}
}
