package grammar

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/wetext/wetext-go/pkg/wetext/internalerr"
)

// SQLite compiled-grammar databases are the distribution format for
// production rule sets: a single self-contained artifact produced from a
// YAML source by cmd/wetext-compile.

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS grammar_meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tag_rules (
	position INTEGER PRIMARY KEY,
	category TEXT NOT NULL,
	pattern TEXT NOT NULL,
	priority INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS verbalize_rules (
	category TEXT PRIMARY KEY,
	template TEXT NOT NULL
);
`

// LoadSQLite loads a grammar from a compiled grammar database.
func LoadSQLite(ctx context.Context, path string) (*Grammar, error) {
	// sql.Open creates missing files lazily; a missing grammar must fail.
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var rs RuleSet

	kind, err := readMeta(ctx, db, "kind")
	if err != nil {
		return nil, fmt.Errorf("%w: missing kind: %v", internalerr.ErrMalformedGrammar, err)
	}
	rs.Kind = Kind(kind)

	policy, err := readMeta(ctx, db, "policy")
	if err == nil {
		rs.Policy = MatchPolicy(policy)
	}

	switch rs.Kind {
	case KindTagger:
		rows, err := db.QueryContext(ctx,
			"SELECT category, pattern, priority FROM tag_rules ORDER BY position")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedGrammar, err)
		}
		defer rows.Close()
		for rows.Next() {
			var r TagRule
			if err := rows.Scan(&r.Category, &r.Pattern, &r.Priority); err != nil {
				return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedGrammar, err)
			}
			rs.Tag = append(rs.Tag, r)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedGrammar, err)
		}
	case KindVerbalizer:
		rows, err := db.QueryContext(ctx,
			"SELECT category, template FROM verbalize_rules ORDER BY category")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedGrammar, err)
		}
		defer rows.Close()
		for rows.Next() {
			var r VerbalizeRule
			if err := rows.Scan(&r.Category, &r.Template); err != nil {
				return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedGrammar, err)
			}
			rs.Verbalize = append(rs.Verbalize, r)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedGrammar, err)
		}
	}

	return New(rs)
}

// WriteSQLite persists a grammar as a compiled grammar database. An existing
// file at path is overwritten.
func WriteSQLite(ctx context.Context, path string, g *Grammar) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO grammar_meta(key, value) VALUES('kind', ?), ('policy', ?)",
		string(g.Kind()), string(g.Policy())); err != nil {
		return err
	}

	for i, r := range g.TagRules() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tag_rules(position, category, pattern, priority) VALUES(?, ?, ?, ?)",
			i, r.Category, r.Pattern, r.Priority); err != nil {
			return err
		}
	}
	for _, r := range g.VerbalizeRules() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO verbalize_rules(category, template) VALUES(?, ?)",
			r.Category, r.Template); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func readMeta(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		"SELECT value FROM grammar_meta WHERE key = ?", key).Scan(&value)
	return value, err
}
