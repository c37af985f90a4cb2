package transfer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/conorfennell/cardstore/internal/domain"
	"github.com/conorfennell/cardstore/internal/storage"
)

// Destination selects where ImportOne puts the imported cards: an existing
// collection, or a new collection with the given name. Exactly one must be set.
type Destination struct {
	CollectionID *int64
	NewName      string
}

// Result counts what an import changed. CardsAdded excludes cards skipped
// because an identical card already existed.
type Result struct {
	Collections int `json:"collections"`
	CardsAdded  int `json:"cards_added"`
}

func (r Result) String() string {
	return fmt.Sprintf("%d collection(s), %d card(s) added", r.Collections, r.CardsAdded)
}

// ImportOne imports the collection at fileIndex of the export file at path
// into the destination. The whole import is a single transaction.
func ImportOne(db *storage.DB, path string, fileIndex int, dest Destination) (Result, error) {
	newName := strings.TrimSpace(dest.NewName)
	if (dest.CollectionID != nil) == (newName != "") {
		return Result{}, domain.ErrInvalidDestination
	}

	doc, err := ReadDocument(path)
	if err != nil {
		return Result{}, err
	}
	if fileIndex < 0 || fileIndex >= len(doc.Collections) {
		return Result{}, fmt.Errorf("%w: invalid collection index %d", domain.ErrInvalidDestination, fileIndex)
	}
	ec := doc.Collections[fileIndex]

	var added int
	err = db.WithTx(func(tx *storage.Tx) error {
		var collectionID int64
		if dest.CollectionID != nil {
			collectionID = *dest.CollectionID
		} else {
			id, err := tx.InsertCollection(newName)
			if err != nil {
				return err
			}
			collectionID = id
		}

		n, err := reconcileCollection(tx, collectionID, ec)
		if err != nil {
			return err
		}
		added = n
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{Collections: 1, CardsAdded: added}
	slog.Info("import complete", "path", path, "index", fileIndex, "cards_added", added)
	return result, nil
}

// ImportAll imports every collection of the export file at path. Each one is
// merged into the existing collection with the same name, or created.
// Collections with a blank name are skipped and not counted.
func ImportAll(db *storage.DB, path string) (Result, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return Result{}, err
	}

	var result Result
	err = db.WithTx(func(tx *storage.Tx) error {
		result = Result{}
		for _, ec := range doc.Collections {
			name := strings.TrimSpace(ec.Name)
			if name == "" {
				slog.Warn("skipping collection with blank name", "path", path)
				continue
			}

			existing, err := tx.FindCollectionByName(name)
			if err != nil {
				return err
			}
			var collectionID int64
			if existing != nil {
				collectionID = existing.ID
			} else {
				collectionID, err = tx.InsertCollection(name)
				if err != nil {
					return err
				}
			}

			n, err := reconcileCollection(tx, collectionID, ec)
			if err != nil {
				return fmt.Errorf("importing collection %q: %w", name, err)
			}
			result.Collections++
			result.CardsAdded += n
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	slog.Info("import complete", "path", path, "collections", result.Collections, "cards_added", result.CardsAdded)
	return result, nil
}

// reconcileCollection merges one exported collection into collectionID and
// returns how many cards were newly inserted.
func reconcileCollection(tx *storage.Tx, collectionID int64, ec ExportCollection) (int, error) {
	subs, err := tx.NewSubCollectionMap(collectionID)
	if err != nil {
		return 0, err
	}
	for _, s := range ec.SubCollections {
		if err := subs.Ensure(s.Name); err != nil {
			return 0, err
		}
	}

	var added int
	for _, card := range ec.Cards {
		inserted, err := tx.InsertCardIfAbsent(
			collectionID,
			subs.Resolve(card.SubCollectionName),
			strings.TrimSpace(card.Question),
			strings.TrimSpace(card.Answer),
			strings.TrimSpace(card.Title),
		)
		if err != nil {
			return 0, err
		}
		if inserted {
			added++
		}
	}

	slog.Debug("reconciled collection",
		"collection_id", collectionID,
		"sub_collections", subs.Len(),
		"cards_in_file", len(ec.Cards),
		"cards_added", added,
	)
	return added, nil
}
