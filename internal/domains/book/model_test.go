package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cache layer stores books with json.Marshal, so the model must
// round-trip every field it was read with.
func TestBookJSONRoundTripKeepsJoinedAuthor(t *testing.T) {
	t.Parallel()

	authorID := int64(7)
	authorName := "Leo Tolstoy"
	original := Book{
		ID:         1,
		Title:      "War and Peace",
		Slug:       "war-and-peace",
		AuthorID:   &authorID,
		AuthorName: &authorName,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var cached Book
	require.NoError(t, json.Unmarshal(data, &cached))
	require.NotNil(t, cached.AuthorName)
	assert.Equal(t, authorName, *cached.AuthorName)

	resp := cached.ToResponse()
	require.NotNil(t, resp.Author)
	assert.Equal(t, authorID, resp.Author.ID)
	assert.Equal(t, authorName, resp.Author.Name)

	// The response DTO owns the wire shape: the joined name appears only
	// inside the embedded author object.
	wire, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(wire), "author_name")
}
