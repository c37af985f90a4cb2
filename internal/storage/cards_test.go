package storage

import (
	"testing"

	"github.com/conorfennell/cardstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCard(t *testing.T) {
	db := openTestDB(t)
	spanish, err := db.CreateCollection("Spanish")
	require.NoError(t, err)
	greetings, err := db.CreateSubCollection(spanish.ID, "Greetings")
	require.NoError(t, err)

	t.Run("defaults to the null sub-collection", func(t *testing.T) {
		id, err := db.AddCard(domain.CardInput{Question: "gato", Answer: "cat", CollectionID: spanish.ID})
		require.NoError(t, err)

		cards, err := db.GetCards(spanish.ID)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, id, cards[0].ID)
		assert.Equal(t, "", cards[0].Title)
		assert.False(t, cards[0].Skipped)

		nullID, err := nullSubCollectionID(db.conn, spanish.ID)
		require.NoError(t, err)
		require.NotNil(t, cards[0].SubCollectionID)
		assert.Equal(t, nullID, *cards[0].SubCollectionID)
	})

	t.Run("stores an explicit sub-collection and title", func(t *testing.T) {
		_, err := db.AddCard(domain.CardInput{
			Question:        "hola",
			Answer:          "hello",
			CollectionID:    spanish.ID,
			Title:           "Basics",
			SubCollectionID: int64Ptr(greetings.ID),
		})
		require.NoError(t, err)

		cards, err := db.GetCards(spanish.ID)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, "hola", cards[1].Question)
		assert.Equal(t, "Basics", cards[1].Title)
		assert.Equal(t, greetings.ID, *cards[1].SubCollectionID)
	})

	t.Run("rejects duplicates with a friendly error", func(t *testing.T) {
		in := domain.CardInput{Question: "perro", Answer: "dog", CollectionID: spanish.ID}
		_, err := db.AddCard(in)
		require.NoError(t, err)

		_, err = db.AddCard(in)
		require.ErrorIs(t, err, domain.ErrDuplicateCard)
		assert.Equal(t, domain.ErrDuplicateCard.Error(), err.Error())

		var count int
		require.NoError(t, db.conn.Get(&count, `SELECT COUNT(*) FROM cards WHERE question = 'perro'`))
		assert.Equal(t, 1, count)
	})

	t.Run("same question in another sub-collection is allowed", func(t *testing.T) {
		_, err := db.AddCard(domain.CardInput{
			Question:        "perro",
			Answer:          "dog",
			CollectionID:    spanish.ID,
			SubCollectionID: int64Ptr(greetings.ID),
		})
		assert.NoError(t, err)
	})

	t.Run("rejects a sub-collection from another collection", func(t *testing.T) {
		other, err := db.CreateSubCollection(1, "Elsewhere")
		require.NoError(t, err)

		_, err = db.AddCard(domain.CardInput{
			Question:        "q",
			Answer:          "a",
			CollectionID:    spanish.ID,
			SubCollectionID: int64Ptr(other.ID),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = db.AddCard(domain.CardInput{
			Question:        "q",
			Answer:          "a",
			CollectionID:    spanish.ID,
			SubCollectionID: int64Ptr(12345),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects unknown collections", func(t *testing.T) {
		_, err := db.AddCard(domain.CardInput{Question: "q", Answer: "a", CollectionID: 999})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUpdateCard(t *testing.T) {
	db := openTestDB(t)
	spanish, err := db.CreateCollection("Spanish")
	require.NoError(t, err)
	greetings, err := db.CreateSubCollection(spanish.ID, "Greetings")
	require.NoError(t, err)

	id, err := db.AddCard(domain.CardInput{Question: "hola", Answer: "hi", CollectionID: 1})
	require.NoError(t, err)
	_, err = db.AddCard(domain.CardInput{
		Question:        "adios",
		Answer:          "bye",
		CollectionID:    spanish.ID,
		SubCollectionID: int64Ptr(greetings.ID),
	})
	require.NoError(t, err)

	t.Run("moves a card to another collection and sub-collection", func(t *testing.T) {
		err := db.UpdateCard(id, domain.CardInput{
			Question:        "hola",
			Answer:          "hello",
			CollectionID:    spanish.ID,
			Title:           "Greeting",
			SubCollectionID: int64Ptr(greetings.ID),
		})
		require.NoError(t, err)

		remaining, err := db.GetCards(1)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		cards, err := db.GetCards(spanish.ID)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, id, cards[0].ID)
		assert.Equal(t, "hello", cards[0].Answer)
		assert.Equal(t, "Greeting", cards[0].Title)
		assert.Equal(t, greetings.ID, *cards[0].SubCollectionID)
	})

	t.Run("clears the sub-collection when none is given", func(t *testing.T) {
		err := db.UpdateCard(id, domain.CardInput{Question: "hola", Answer: "hello", CollectionID: spanish.ID})
		require.NoError(t, err)

		nullID, err := nullSubCollectionID(db.conn, spanish.ID)
		require.NoError(t, err)
		cards, err := db.GetCards(spanish.ID)
		require.NoError(t, err)
		assert.Equal(t, nullID, *cards[0].SubCollectionID)
		assert.Equal(t, "", cards[0].Title)
	})

	t.Run("rejects an update that collides with another card", func(t *testing.T) {
		err := db.UpdateCard(id, domain.CardInput{
			Question:        "adios",
			Answer:          "bye",
			CollectionID:    spanish.ID,
			SubCollectionID: int64Ptr(greetings.ID),
		})
		require.ErrorIs(t, err, domain.ErrDuplicateCard)
	})
}

func TestDeleteCard(t *testing.T) {
	db := openTestDB(t)
	id, err := db.AddCard(domain.CardInput{Question: "q", Answer: "a", CollectionID: 1})
	require.NoError(t, err)

	require.NoError(t, db.DeleteCard(id))
	cards, err := db.GetCards(1)
	require.NoError(t, err)
	assert.Empty(t, cards)

	assert.NoError(t, db.DeleteCard(id), "deleting a missing card is a no-op")
}

func TestSkipped(t *testing.T) {
	db := openTestDB(t)
	other, err := db.CreateCollection("Other")
	require.NoError(t, err)

	first, err := db.AddCard(domain.CardInput{Question: "1", Answer: "1", CollectionID: 1})
	require.NoError(t, err)
	second, err := db.AddCard(domain.CardInput{Question: "2", Answer: "2", CollectionID: 1})
	require.NoError(t, err)
	elsewhere, err := db.AddCard(domain.CardInput{Question: "3", Answer: "3", CollectionID: other.ID})
	require.NoError(t, err)

	for _, id := range []int64{first, second, elsewhere} {
		require.NoError(t, db.SetCardSkipped(id, true))
	}
	require.NoError(t, db.SetCardSkipped(second, false))

	cards, err := db.GetCards(1)
	require.NoError(t, err)
	assert.True(t, cards[0].Skipped)
	assert.False(t, cards[1].Skipped)

	require.NoError(t, db.ClearSkippedForCollection(1))
	cards, err = db.GetCards(1)
	require.NoError(t, err)
	for _, c := range cards {
		assert.False(t, c.Skipped)
	}

	otherCards, err := db.GetCards(other.ID)
	require.NoError(t, err)
	assert.True(t, otherCards[0].Skipped, "clearing one collection leaves others alone")
}

func TestInsertCardIfAbsent(t *testing.T) {
	db := openTestDB(t)

	err := db.WithTx(func(tx *Tx) error {
		nullID, err := tx.NullSubCollectionID(1)
		require.NoError(t, err)

		inserted, err := tx.InsertCardIfAbsent(1, nullID, "q", "a", "")
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = tx.InsertCardIfAbsent(1, nullID, "q", "a", "different title")
		require.NoError(t, err)
		assert.False(t, inserted)
		return nil
	})
	require.NoError(t, err)

	cards, err := db.GetCards(1)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}
