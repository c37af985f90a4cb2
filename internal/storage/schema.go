package storage

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
)

// nullSubCollectionName names the hidden sub-collection every collection owns.
// Cards without a real sub-collection point at it.
const nullSubCollectionName = "- None -"

const defaultCollectionName = "Default"

const schema = `
-- Top-level groups of cards.
CREATE TABLE IF NOT EXISTS collections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- Second-level groups; each collection also owns one hidden null sub-collection.
CREATE TABLE IF NOT EXISTS sub_collections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    collection_id INTEGER NOT NULL REFERENCES collections(id),
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    UNIQUE(collection_id, name)
);

CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    collection_id INTEGER NOT NULL DEFAULT 1 REFERENCES collections(id),
    title TEXT NOT NULL DEFAULT '',
    skipped INTEGER NOT NULL DEFAULT 0,
    sub_collection_id INTEGER REFERENCES sub_collections(id)
);
`

// cardColumnUpgrades lists columns added to the cards table after its first
// release. Stores created before a column existed get it with a default.
var cardColumnUpgrades = []struct {
	name string
	ddl  string
}{
	{"collection_id", "ALTER TABLE cards ADD COLUMN collection_id INTEGER NOT NULL DEFAULT 1"},
	{"title", "ALTER TABLE cards ADD COLUMN title TEXT NOT NULL DEFAULT ''"},
	{"skipped", "ALTER TABLE cards ADD COLUMN skipped INTEGER NOT NULL DEFAULT 0"},
	{"sub_collection_id", "ALTER TABLE cards ADD COLUMN sub_collection_id INTEGER REFERENCES sub_collections(id)"},
}

const cardsUniqueIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS cards_uniq_collection_sub_question_answer
ON cards(collection_id, sub_collection_id, question, answer)`

// initSchema creates missing tables, upgrades older layouts in place and seeds
// the default collection together with every collection's null sub-collection.
func initSchema(conn *sqlx.DB) error {
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	for _, col := range cardColumnUpgrades {
		if _, err := conn.Exec(col.ddl); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("failed to add column cards.%s: %w", col.name, err)
		}
		slog.Debug("added missing column", "table", "cards", "column", col.name)
	}

	if _, err := conn.Exec(`INSERT OR IGNORE INTO collections (name) VALUES (?)`, defaultCollectionName); err != nil {
		return fmt.Errorf("failed to seed default collection: %w", err)
	}

	if _, err := conn.Exec(`
		INSERT OR IGNORE INTO sub_collections (name, collection_id)
		SELECT ?, id FROM collections
	`, nullSubCollectionName); err != nil {
		return fmt.Errorf("failed to seed null sub-collections: %w", err)
	}

	res, err := conn.Exec(`
		UPDATE cards
		SET sub_collection_id = (
			SELECT s.id FROM sub_collections s
			WHERE s.collection_id = cards.collection_id AND s.name = ?
		)
		WHERE sub_collection_id IS NULL
	`, nullSubCollectionName)
	if err != nil {
		return fmt.Errorf("failed to backfill card sub-collections: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Debug("backfilled card sub-collections", "cards", n)
	}

	if _, err := conn.Exec(cardsUniqueIndex); err != nil {
		return fmt.Errorf("failed to create cards unique index: %w", err)
	}
	return nil
}

// isDuplicateColumn reports whether err is SQLite refusing to add a column that
// is already there, which means the upgrade has been applied before.
func isDuplicateColumn(err error) bool {
	return strings.Contains(err.Error(), "duplicate column name")
}
