package domain

// Collection is a top-level, uniquely named group of cards.
type Collection struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// SubCollection is an optional second-level grouping inside a collection.
type SubCollection struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	CollectionID int64  `json:"collection_id" db:"collection_id"`
}

// Card represents a single question-answer entry.
// SubCollectionID is nil only for rows that predate sub-collections and
// have not been backfilled yet.
type Card struct {
	ID              int64  `json:"id" db:"id"`
	Question        string `json:"question" db:"question"`
	Answer          string `json:"answer" db:"answer"`
	Title           string `json:"title" db:"title"`
	Skipped         bool   `json:"skipped" db:"skipped"`
	CollectionID    int64  `json:"collection_id" db:"collection_id"`
	SubCollectionID *int64 `json:"sub_collection_id,omitempty" db:"sub_collection_id"`
}

// CardInput carries the caller-supplied fields for creating or updating a card.
// A nil SubCollectionID means "no sub-collection".
type CardInput struct {
	Question        string
	Answer          string
	CollectionID    int64
	Title           string
	SubCollectionID *int64
}
