package transfer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/conorfennell/cardstore/internal/domain"
	"github.com/conorfennell/cardstore/internal/parser"
	"github.com/conorfennell/cardstore/internal/storage"
)

// ImportMarkdown adds the Q:/A:/T: cards of a markdown file to an existing
// collection, optionally under the named sub-collection (created if needed).
// Like the JSON imports, cards that already exist are skipped, not reported.
func ImportMarkdown(db *storage.DB, path string, collectionID int64, subCollectionName string) (Result, error) {
	cards, err := parser.ParseFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: parsing %s: %v", domain.ErrIO, path, err)
	}

	var added int
	err = db.WithTx(func(tx *storage.Tx) error {
		subs, err := tx.NewSubCollectionMap(collectionID)
		if err != nil {
			return err
		}
		if err := subs.Ensure(subCollectionName); err != nil {
			return err
		}
		subID := subs.Resolve(subCollectionName)

		for _, card := range cards {
			inserted, err := tx.InsertCardIfAbsent(
				collectionID,
				subID,
				strings.TrimSpace(card.Question),
				strings.TrimSpace(card.Answer),
				strings.TrimSpace(card.Title),
			)
			if err != nil {
				return err
			}
			if inserted {
				added++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	slog.Info("markdown import complete",
		"path", path,
		"collection_id", collectionID,
		"parsed_cards", len(cards),
		"cards_added", added,
	)
	return Result{Collections: 1, CardsAdded: added}, nil
}
