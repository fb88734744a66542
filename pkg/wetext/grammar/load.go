package grammar

import (
	"context"
	"path/filepath"
	"strings"
)

// LoadFile loads a grammar from disk, dispatching on file extension:
// .db/.sqlite/.sqlite3 are compiled grammar databases, everything else is
// treated as a YAML rule file.
func LoadFile(ctx context.Context, path string) (*Grammar, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return LoadYAML(path)
	}
}
