// Package transfer moves collections between the card store and portable
// JSON export files.
package transfer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/conorfennell/cardstore/internal/domain"
)

// Document is the root of an export file.
type Document struct {
	Collections []ExportCollection `json:"collections"`
}

// ExportCollection is one collection inside an export file. Ids are not
// exported; sub-collections are matched by name on import.
type ExportCollection struct {
	Name           string                `json:"name"`
	SubCollections []ExportSubCollection `json:"sub_collections"`
	Cards          []ExportCard          `json:"cards"`
}

// ExportSubCollection names a user-visible sub-collection.
type ExportSubCollection struct {
	Name string `json:"name"`
}

// ExportCard is a card without its id or session state.
// An empty SubCollectionName means the card has no sub-collection.
type ExportCard struct {
	Question          string `json:"question"`
	Answer            string `json:"answer"`
	Title             string `json:"title"`
	SubCollectionName string `json:"sub_collection_name,omitempty"`
}

// Summary describes one collection of an export file for selection UIs.
type Summary struct {
	Name               string `json:"name"`
	CardCount          int    `json:"card_count"`
	SubCollectionCount int    `json:"sub_collection_count"`
}

// ReadDocument reads and decodes an export file.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrIO, path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode export file %s: %w", path, err)
	}
	return &doc, nil
}

// WriteDocument writes doc to path as indented JSON, replacing any existing file.
func WriteDocument(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrIO, path, err)
	}
	return nil
}

// ReadExportFile lists the collections of an export file without touching the store.
func ReadExportFile(path string) ([]Summary, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(doc.Collections))
	for _, c := range doc.Collections {
		summaries = append(summaries, Summary{
			Name:               c.Name,
			CardCount:          len(c.Cards),
			SubCollectionCount: len(c.SubCollections),
		})
	}
	return summaries, nil
}
