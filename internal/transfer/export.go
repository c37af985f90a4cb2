package transfer

import (
	"log/slog"

	"github.com/conorfennell/cardstore/internal/domain"
	"github.com/conorfennell/cardstore/internal/storage"
)

// ExportOne writes a single collection to path.
func ExportOne(db *storage.DB, collectionID int64, path string) error {
	c, err := db.FindCollection(collectionID)
	if err != nil {
		return err
	}

	ec, err := buildExportCollection(db, *c)
	if err != nil {
		return err
	}
	if err := WriteDocument(path, &Document{Collections: []ExportCollection{ec}}); err != nil {
		return err
	}

	slog.Info("export complete", "path", path, "collection", c.Name, "cards", len(ec.Cards))
	return nil
}

// ExportAll writes every collection, ordered by name, to path.
func ExportAll(db *storage.DB, path string) error {
	collections, err := db.GetCollections()
	if err != nil {
		return err
	}

	doc := Document{Collections: make([]ExportCollection, 0, len(collections))}
	var cards int
	for _, c := range collections {
		ec, err := buildExportCollection(db, c)
		if err != nil {
			return err
		}
		cards += len(ec.Cards)
		doc.Collections = append(doc.Collections, ec)
	}
	if err := WriteDocument(path, &doc); err != nil {
		return err
	}

	slog.Info("export complete", "path", path, "collections", len(doc.Collections), "cards", cards)
	return nil
}

func buildExportCollection(db *storage.DB, c domain.Collection) (ExportCollection, error) {
	subs, err := db.GetSubCollections(c.ID)
	if err != nil {
		return ExportCollection{}, err
	}
	cards, err := db.GetCards(c.ID)
	if err != nil {
		return ExportCollection{}, err
	}

	// Only user-visible sub-collections are in subs, so cards filed under the
	// null sub-collection fall through to an empty name.
	names := make(map[int64]string, len(subs))
	ec := ExportCollection{
		Name:           c.Name,
		SubCollections: make([]ExportSubCollection, 0, len(subs)),
		Cards:          make([]ExportCard, 0, len(cards)),
	}
	for _, s := range subs {
		names[s.ID] = s.Name
		ec.SubCollections = append(ec.SubCollections, ExportSubCollection{Name: s.Name})
	}
	for _, card := range cards {
		exported := ExportCard{
			Question: card.Question,
			Answer:   card.Answer,
			Title:    card.Title,
		}
		if card.SubCollectionID != nil {
			exported.SubCollectionName = names[*card.SubCollectionID]
		}
		ec.Cards = append(ec.Cards, exported)
	}
	return ec, nil
}
