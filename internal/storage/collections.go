package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/conorfennell/cardstore/internal/domain"
	"github.com/jmoiron/sqlx"
)

// CreateCollection inserts a collection together with its null sub-collection.
func (db *DB) CreateCollection(name string) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: collection", domain.ErrInvalidName)
	}

	var id int64
	err := db.WithTx(func(tx *Tx) error {
		var err error
		id, err = insertCollection(tx.tx, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &domain.Collection{ID: id, Name: name}, nil
}

// GetCollections retrieves all collections ordered by name.
func (db *DB) GetCollections() ([]domain.Collection, error) {
	collections := []domain.Collection{}
	if err := db.conn.Select(&collections, `SELECT id, name FROM collections ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to get collections: %w", err)
	}
	return collections, nil
}

// FindCollection retrieves a collection by id.
func (db *DB) FindCollection(id int64) (*domain.Collection, error) {
	var c domain.Collection
	if err := db.conn.Get(&c, `SELECT id, name FROM collections WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "collection %d", id)
	}
	return &c, nil
}

// CreateSubCollection adds a named sub-collection to a collection.
func (db *DB) CreateSubCollection(collectionID int64, name string) (*domain.SubCollection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: sub-collection", domain.ErrInvalidName)
	}
	if strings.EqualFold(name, nullSubCollectionName) {
		return nil, domain.ErrReservedName
	}
	if _, err := db.FindCollection(collectionID); err != nil {
		return nil, err
	}

	id, err := insertSubCollection(db.conn, collectionID, name)
	if err != nil {
		return nil, err
	}
	return &domain.SubCollection{ID: id, Name: name, CollectionID: collectionID}, nil
}

// GetSubCollections retrieves the user-visible sub-collections of a
// collection ordered by name. The null sub-collection is never included.
func (db *DB) GetSubCollections(collectionID int64) ([]domain.SubCollection, error) {
	subs := []domain.SubCollection{}
	err := db.conn.Select(&subs, `
		SELECT id, name, collection_id
		FROM sub_collections
		WHERE collection_id = ? AND name != ?
		ORDER BY name
	`, collectionID, nullSubCollectionName)
	if err != nil {
		return nil, fmt.Errorf("failed to get sub-collections for collection %d: %w", collectionID, err)
	}
	return subs, nil
}

// FindCollectionByName retrieves a collection by its exact name.
// It returns nil when no collection has that name.
func (tx *Tx) FindCollectionByName(name string) (*domain.Collection, error) {
	var c domain.Collection
	err := tx.tx.Get(&c, `SELECT id, name FROM collections WHERE name = ?`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find collection by name %q: %w", name, err)
	}
	return &c, nil
}

// InsertCollection inserts a collection and its null sub-collection and
// returns the new collection id.
func (tx *Tx) InsertCollection(name string) (int64, error) {
	return insertCollection(tx.tx, name)
}

// NullSubCollectionID returns the id of the collection's null sub-collection.
func (tx *Tx) NullSubCollectionID(collectionID int64) (int64, error) {
	return nullSubCollectionID(tx.tx, collectionID)
}

// GetOrCreateSubCollection returns the id of the sub-collection with the exact
// (trimmed) name inside the collection, creating it when absent.
func (tx *Tx) GetOrCreateSubCollection(collectionID int64, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: sub-collection", domain.ErrInvalidName)
	}

	var id int64
	err := tx.tx.Get(&id, `
		SELECT id FROM sub_collections WHERE collection_id = ? AND name = ?
	`, collectionID, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to find sub-collection %q: %w", name, err)
	}
	return insertSubCollection(tx.tx, collectionID, name)
}

func insertCollection(q sqlx.Ext, name string) (int64, error) {
	res, err := q.Exec(`INSERT INTO collections (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: collection %q", domain.ErrDuplicateName, name)
		}
		return 0, fmt.Errorf("failed to insert collection %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for collection %q: %w", name, err)
	}

	if _, err := q.Exec(`
		INSERT INTO sub_collections (name, collection_id) VALUES (?, ?)
	`, nullSubCollectionName, id); err != nil {
		return 0, fmt.Errorf("failed to insert null sub-collection for collection %d: %w", id, err)
	}
	return id, nil
}

func insertSubCollection(q sqlx.Ext, collectionID int64, name string) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO sub_collections (name, collection_id) VALUES (?, ?)
	`, name, collectionID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: sub-collection %q", domain.ErrDuplicateName, name)
		}
		return 0, fmt.Errorf("failed to insert sub-collection %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for sub-collection %q: %w", name, err)
	}
	return id, nil
}

func nullSubCollectionID(q sqlx.Queryer, collectionID int64) (int64, error) {
	var id int64
	err := sqlx.Get(q, &id, `
		SELECT id FROM sub_collections WHERE collection_id = ? AND name = ?
	`, collectionID, nullSubCollectionName)
	if err != nil {
		return 0, notFound(err, "collection %d", collectionID)
	}
	return id, nil
}
