package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var nameSanitizeRe = regexp.MustCompile(`[^a-z0-9_]+`)

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback %s
-- +goose StatementEnd
`

// CreateSQLMigration writes an empty goose migration named
// <dir>/<YYYYMMDDHHMMSS>_<name>.sql and returns its path.
func CreateSQLMigration(dir string, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}

	safe := strings.ToLower(strings.TrimSpace(name))
	safe = nameSanitizeRe.ReplaceAllString(safe, "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		return "", fmt.Errorf("name %q sanitizes to an empty filename", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	version := time.Now().UTC().Format("20060102150405")
	fullpath := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", version, safe))
	if _, err := os.Stat(fullpath); err == nil {
		return "", fmt.Errorf("migration already exists: %s", fullpath)
	}

	body := fmt.Sprintf(migrationTemplate, safe, safe)
	if err := os.WriteFile(fullpath, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", fullpath, err)
	}

	return fullpath, nil
}
