package listitem

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch_Decode(t *testing.T) {
	var absent Patch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.True(t, absent.IsEmpty())

	var cleared Patch
	require.NoError(t, json.Unmarshal([]byte(`{"finishDate":null,"notes":""}`), &cleared))
	assert.False(t, cleared.IsEmpty())
	assert.True(t, cleared.FinishDate.Set)
	assert.Nil(t, cleared.FinishDate.Value)
	require.NotNil(t, cleared.Notes)
	assert.Empty(t, *cleared.Notes)

	var dated Patch
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":1700000000000}`), &dated))
	require.NotNil(t, dated.StartDate.Value)
	assert.Equal(t, int64(1700000000000), *dated.StartDate.Value)
}

func TestPatch_Apply(t *testing.T) {
	start, finish := int64(1), int64(2)
	item := ListItem{ID: "li-1", Rating: 3, Notes: "keep", StartDate: &start, FinishDate: &finish}

	rating := 5
	got := Patch{Rating: &rating, FinishDate: OptionalDate{Set: true}}.Apply(item)

	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "keep", got.Notes)
	assert.Equal(t, &start, got.StartDate)
	assert.Nil(t, got.FinishDate)
}
