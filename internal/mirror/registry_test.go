package mirror

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFile(t *testing.T) {
	registry, err := Open(filepath.Join(t.TempDir(), "contest_users.txt"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if registry.Contains("alice") {
		t.Fatal("expected an empty registry")
	}
}

func TestAddAppendsOncePerUsername(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contest_users.txt")
	registry, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	for _, name := range []string{"alice", "bob", "alice"} {
		if err := registry.Add(name); err != nil {
			t.Fatalf("Add(%q) returned error: %v", name, err)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading registry file: %v", err)
	}
	if string(raw) != "alice\nbob\n" {
		t.Fatalf("expected one line per distinct username, got %q", string(raw))
	}
}

func TestOpenLoadsExistingUsernames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contest_users.txt")
	if err := os.WriteFile(path, []byte("alice\nbob\n"), 0o644); err != nil {
		t.Fatalf("seeding registry file: %v", err)
	}

	registry, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if !registry.Contains("alice") || !registry.Contains("bob") {
		t.Fatal("expected existing usernames to be loaded")
	}

	// A reload must not duplicate what is already on disk.
	if err := registry.Add("alice"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading registry file: %v", err)
	}
	if string(raw) != "alice\nbob\n" {
		t.Fatalf("expected file unchanged, got %q", string(raw))
	}
}
