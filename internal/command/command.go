// Package command is the narrow interface the UI layer calls into. Every
// method opens the store, runs one operation and closes the store again, so
// no state is shared between calls.
package command

import (
	"fmt"

	"github.com/conorfennell/cardstore/internal/config"
	"github.com/conorfennell/cardstore/internal/domain"
	"github.com/conorfennell/cardstore/internal/gitarchive"
	"github.com/conorfennell/cardstore/internal/storage"
	"github.com/conorfennell/cardstore/internal/transfer"
)

// Service executes commands against the store configured in cfg.
type Service struct {
	cfg *config.Config
}

// New returns a Service for cfg.
func New(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// withDB opens the store, hands it to fn and closes it afterwards.
func (s *Service) withDB(fn func(db *storage.DB) error) error {
	if err := s.cfg.EnsureDBDir(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	db, err := storage.Open(s.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	defer db.Close()
	return fn(db)
}

// AddCard creates a card and returns its id.
func (s *Service) AddCard(in domain.CardInput) (int64, error) {
	var id int64
	err := s.withDB(func(db *storage.DB) error {
		var err error
		id, err = db.AddCard(in)
		return err
	})
	return id, err
}

// UpdateCard overwrites the card with the given id.
func (s *Service) UpdateCard(id int64, in domain.CardInput) error {
	return s.withDB(func(db *storage.DB) error {
		return db.UpdateCard(id, in)
	})
}

// DeleteCard deletes the card with the given id, if any.
func (s *Service) DeleteCard(id int64) error {
	return s.withDB(func(db *storage.DB) error {
		return db.DeleteCard(id)
	})
}

// GetCards lists the cards of a collection.
func (s *Service) GetCards(collectionID int64) ([]domain.Card, error) {
	var cards []domain.Card
	err := s.withDB(func(db *storage.DB) error {
		var err error
		cards, err = db.GetCards(collectionID)
		return err
	})
	return cards, err
}

// SetCardSkipped toggles the skipped flag of a card.
func (s *Service) SetCardSkipped(id int64, skipped bool) error {
	return s.withDB(func(db *storage.DB) error {
		return db.SetCardSkipped(id, skipped)
	})
}

// ClearSkippedForCollection resets the skipped flag for a whole collection.
func (s *Service) ClearSkippedForCollection(collectionID int64) error {
	return s.withDB(func(db *storage.DB) error {
		return db.ClearSkippedForCollection(collectionID)
	})
}

func (s *Service) GetCollections() ([]domain.Collection, error) {
	var collections []domain.Collection
	err := s.withDB(func(db *storage.DB) error {
		var err error
		collections, err = db.GetCollections()
		return err
	})
	return collections, err
}

func (s *Service) CreateCollection(name string) (*domain.Collection, error) {
	var c *domain.Collection
	err := s.withDB(func(db *storage.DB) error {
		var err error
		c, err = db.CreateCollection(name)
		return err
	})
	return c, err
}

func (s *Service) GetSubCollections(collectionID int64) ([]domain.SubCollection, error) {
	var subs []domain.SubCollection
	err := s.withDB(func(db *storage.DB) error {
		var err error
		subs, err = db.GetSubCollections(collectionID)
		return err
	})
	return subs, err
}

func (s *Service) CreateSubCollection(collectionID int64, name string) (*domain.SubCollection, error) {
	var sub *domain.SubCollection
	err := s.withDB(func(db *storage.DB) error {
		var err error
		sub, err = db.CreateSubCollection(collectionID, name)
		return err
	})
	return sub, err
}

// ExportCollection writes one collection to path. With commit set, the file
// is then committed to the git repository enclosing it.
func (s *Service) ExportCollection(collectionID int64, path string, commit bool) (string, error) {
	err := s.withDB(func(db *storage.DB) error {
		return transfer.ExportOne(db, collectionID, path)
	})
	if err != nil || !commit {
		return "", err
	}
	return s.commit(path, fmt.Sprintf("Export collection %d", collectionID))
}

// ExportAll writes every collection to path, optionally committing the file.
func (s *Service) ExportAll(path string, commit bool) (string, error) {
	err := s.withDB(func(db *storage.DB) error {
		return transfer.ExportAll(db, path)
	})
	if err != nil || !commit {
		return "", err
	}
	return s.commit(path, "Export all collections")
}

func (s *Service) commit(path, message string) (string, error) {
	return gitarchive.Commit(path, message, gitarchive.Author{
		Name:  s.cfg.GitAuthorName,
		Email: s.cfg.GitAuthorEmail,
	})
}

// ReadExportFile summarises an export file. The store is not opened.
func (s *Service) ReadExportFile(path string) ([]transfer.Summary, error) {
	return transfer.ReadExportFile(path)
}

// ImportCollection imports the collection at fileIndex of an export file.
func (s *Service) ImportCollection(path string, fileIndex int, dest transfer.Destination) (transfer.Result, error) {
	var result transfer.Result
	err := s.withDB(func(db *storage.DB) error {
		var err error
		result, err = transfer.ImportOne(db, path, fileIndex, dest)
		return err
	})
	return result, err
}

// ImportAll imports every collection of an export file, merging by name.
func (s *Service) ImportAll(path string) (transfer.Result, error) {
	var result transfer.Result
	err := s.withDB(func(db *storage.DB) error {
		var err error
		result, err = transfer.ImportAll(db, path)
		return err
	})
	return result, err
}

// ImportMarkdown adds the cards of a markdown notes file to a collection.
func (s *Service) ImportMarkdown(path string, collectionID int64, subCollectionName string) (transfer.Result, error) {
	var result transfer.Result
	err := s.withDB(func(db *storage.DB) error {
		var err error
		result, err = transfer.ImportMarkdown(db, path, collectionID, subCollectionName)
		return err
	})
	return result, err
}
