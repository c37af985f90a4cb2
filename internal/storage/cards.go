package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/conorfennell/cardstore/internal/domain"
	"github.com/jmoiron/sqlx"
)

const selectCardFields = `id, question, answer, COALESCE(title, '') AS title,
	COALESCE(skipped, 0) AS skipped, collection_id, sub_collection_id`

// AddCard inserts a new card and returns its id.
// A card without a sub-collection is filed under the collection's null
// sub-collection. Inserting an existing (collection, sub-collection,
// question, answer) tuple fails with domain.ErrDuplicateCard.
func (db *DB) AddCard(in domain.CardInput) (int64, error) {
	subID, err := resolveSubCollection(db.conn, in.CollectionID, in.SubCollectionID)
	if err != nil {
		return 0, err
	}

	res, err := db.conn.Exec(`
		INSERT INTO cards (question, answer, collection_id, title, sub_collection_id)
		VALUES (?, ?, ?, ?, ?)
	`, in.Question, in.Answer, in.CollectionID, in.Title, subID)
	if err != nil {
		return 0, mapCardWriteError("insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for card: %w", err)
	}
	return id, nil
}

// UpdateCard overwrites every field of a card, possibly moving it to another
// collection or sub-collection.
func (db *DB) UpdateCard(id int64, in domain.CardInput) error {
	subID, err := resolveSubCollection(db.conn, in.CollectionID, in.SubCollectionID)
	if err != nil {
		return err
	}

	_, err = db.conn.Exec(`
		UPDATE cards
		SET question = ?, answer = ?, collection_id = ?, title = ?, sub_collection_id = ?
		WHERE id = ?
	`, in.Question, in.Answer, in.CollectionID, in.Title, subID, id)
	if err != nil {
		return mapCardWriteError("update", err)
	}
	return nil
}

// DeleteCard removes a card from the database by its id.
// Deleting an id that does not exist is not an error.
func (db *DB) DeleteCard(id int64) error {
	if _, err := db.conn.Exec(`DELETE FROM cards WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	return nil
}

// SetCardSkipped sets the per-session skipped flag of a card.
func (db *DB) SetCardSkipped(id int64, skipped bool) error {
	if _, err := db.conn.Exec(`UPDATE cards SET skipped = ? WHERE id = ?`, skipped, id); err != nil {
		return fmt.Errorf("failed to set skipped for card %d: %w", id, err)
	}
	return nil
}

// ClearSkippedForCollection resets the skipped flag on every card of a collection.
func (db *DB) ClearSkippedForCollection(collectionID int64) error {
	if _, err := db.conn.Exec(`UPDATE cards SET skipped = 0 WHERE collection_id = ?`, collectionID); err != nil {
		return fmt.Errorf("failed to clear skipped for collection %d: %w", collectionID, err)
	}
	return nil
}

// GetCards retrieves all cards of a collection in insertion order.
func (db *DB) GetCards(collectionID int64) ([]domain.Card, error) {
	cards := []domain.Card{}
	err := db.conn.Select(&cards, `
		SELECT `+selectCardFields+`
		FROM cards WHERE collection_id = ?
		ORDER BY id
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for collection %d: %w", collectionID, err)
	}
	return cards, nil
}

// InsertCardIfAbsent inserts a card unless an identical one already exists.
// It reports whether a row was written; duplicates are not an error here.
func (tx *Tx) InsertCardIfAbsent(collectionID, subCollectionID int64, question, answer, title string) (bool, error) {
	res, err := tx.tx.Exec(`
		INSERT OR IGNORE INTO cards (question, answer, collection_id, title, sub_collection_id)
		VALUES (?, ?, ?, ?, ?)
	`, question, answer, collectionID, title, subCollectionID)
	if err != nil {
		return false, fmt.Errorf("failed to insert card into collection %d: %w", collectionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// resolveSubCollection returns the sub-collection id a card should be stored
// under. An explicit id must belong to the same collection as the card.
func resolveSubCollection(q sqlx.Queryer, collectionID int64, subCollectionID *int64) (int64, error) {
	if subCollectionID == nil {
		return nullSubCollectionID(q, collectionID)
	}

	var owner int64
	err := sqlx.Get(q, &owner, `SELECT collection_id FROM sub_collections WHERE id = ?`, *subCollectionID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up sub-collection %d: %w", *subCollectionID, err)
	}
	if err != nil || owner != collectionID {
		return 0, fmt.Errorf("%w: sub-collection %d in collection %d", domain.ErrNotFound, *subCollectionID, collectionID)
	}
	return *subCollectionID, nil
}
