// Package mirror maintains the plain-text username registry that
// shadows the contest entry table. The file is a display artifact for
// humans; the database stays the single source of truth.
package mirror

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

type Registry struct {
	path string

	mu   sync.Mutex
	seen map[string]struct{}
}

// Open loads the registry file, creating an empty registry when the
// file does not exist yet.
func Open(path string) (*Registry, error) {
	r := &Registry{
		path: path,
		seen: make(map[string]struct{}),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("reading registry file: %w", err)
	}

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.seen[line] = struct{}{}
	}

	return r, nil
}

// Add appends the username on its own line unless it is already
// present. Empty usernames are rejected by the caller.
func (r *Registry) Add(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[username]; ok {
		return nil
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening registry file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(username + "\n"); err != nil {
		return fmt.Errorf("appending to registry file: %w", err)
	}

	r.seen[username] = struct{}{}
	return nil
}

func (r *Registry) Contains(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.seen[username]
	return ok
}
