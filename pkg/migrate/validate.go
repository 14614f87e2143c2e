package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks that every SQL migration in dir follows the
// YYYYMMDDHHMMSS_name.sql convention, carries both goose markers, and
// that no two files share a version. An empty dir is not an error.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		name := e.Name()

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		if prev, ok := seen[m[1]]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, name)
		}
		seen[m[1]] = name

		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read file %q: %w", name, err)
		}
		for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
			if !strings.Contains(string(b), marker) {
				return fmt.Errorf("migration %q missing %q", name, marker)
			}
		}
	}

	return nil
}
