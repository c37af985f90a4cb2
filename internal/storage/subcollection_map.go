package storage

import "strings"

// SubCollectionMap resolves sub-collection names to ids within one collection
// during a bulk import. Names are matched exactly after trimming; anything
// unknown resolves to the collection's null sub-collection.
type SubCollectionMap struct {
	tx           *Tx
	collectionID int64
	nullID       int64
	ids          map[string]int64
}

// NewSubCollectionMap returns a map for the collection seeded with its null
// sub-collection. It fails with domain.ErrNotFound for an unknown collection.
func (tx *Tx) NewSubCollectionMap(collectionID int64) (*SubCollectionMap, error) {
	nullID, err := tx.NullSubCollectionID(collectionID)
	if err != nil {
		return nil, err
	}
	return &SubCollectionMap{
		tx:           tx,
		collectionID: collectionID,
		nullID:       nullID,
		ids:          map[string]int64{nullSubCollectionName: nullID},
	}, nil
}

// Ensure makes name resolvable, creating the sub-collection if the collection
// has none by that name. Blank names are ignored, and the reserved name in
// any case maps to the null sub-collection instead of creating a new row.
func (m *SubCollectionMap) Ensure(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if _, ok := m.ids[name]; ok {
		return nil
	}
	if strings.EqualFold(name, nullSubCollectionName) {
		m.ids[name] = m.nullID
		return nil
	}

	id, err := m.tx.GetOrCreateSubCollection(m.collectionID, name)
	if err != nil {
		return err
	}
	m.ids[name] = id
	return nil
}

// Resolve returns the id for name, defaulting to the null sub-collection for
// blank or unknown names.
func (m *SubCollectionMap) Resolve(name string) int64 {
	name = strings.TrimSpace(name)
	if name == "" {
		return m.nullID
	}
	if id, ok := m.ids[name]; ok {
		return id
	}
	return m.nullID
}

// Len returns the number of user-visible sub-collections known to the map.
func (m *SubCollectionMap) Len() int {
	n := 0
	for _, id := range m.ids {
		if id != m.nullID {
			n++
		}
	}
	return n
}
