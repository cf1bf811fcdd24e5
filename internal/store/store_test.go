package store

import (
	"context"
	"testing"

	"skysunny/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, found, err := s.Get(ctx, KeyDraft)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, KeyLastOrderNumber, "SS-100"))
	val, found, err := s.Get(ctx, KeyLastOrderNumber)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "SS-100", val)

	require.NoError(t, s.Delete(ctx, KeyLastOrderNumber, KeyDraft))
	_, found, err = s.Get(ctx, KeyLastOrderNumber)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	draft := models.Draft{
		OrderNumber: "SS-200",
		Amount:      45000,
		StoreID:     7,
		StoreName:   "시작 스터디카페 인천 송도점",
		PassType:    models.PassCash,
		FinalAmount: 40000,
	}
	require.NoError(t, SetJSON(ctx, s, KeyDraft, draft))

	var loaded models.Draft
	found, err := GetJSON(ctx, s, KeyDraft, &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, draft, loaded)
}

func TestGetJSONMissingKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var draft models.Draft
	found, err := GetJSON(ctx, s, KeyDraft, &draft)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, draft.OrderNumber)
}

func TestGetJSONCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, KeyDraft, "{not json"))

	var draft models.Draft
	_, err := GetJSON(ctx, s, KeyDraft, &draft)
	assert.Error(t, err)
}
