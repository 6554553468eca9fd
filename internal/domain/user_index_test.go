package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studywise-api/internal/domain"
)

func TestNewUserIndexIsEmpty(t *testing.T) {
	t.Parallel()

	idx := domain.NewUserIndex()

	require.NotNil(t, idx.FlashcardSets)
	assert.Empty(t, idx.FlashcardSets)

	data, err := json.Marshal(idx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"flashcardSets":[]}`, string(data))
}

func TestUserIndexAppendPreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	idx := domain.NewUserIndex()
	idx.Append("Biology101")
	idx.Append("Capitals")
	idx.Append("Biology101")

	assert.Equal(t, []string{"Biology101", "Capitals", "Biology101"}, idx.SetNames())
}

func TestUserIndexSetNamesEmpty(t *testing.T) {
	t.Parallel()

	idx := domain.NewUserIndex()
	names := idx.SetNames()

	require.NotNil(t, names)
	assert.Empty(t, names)
}
