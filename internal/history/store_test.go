package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/storage"
	"github.com/Veraticus/waste-wise/internal/testutil"
)

func TestStore_LoadEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewStore(db.Storage)

	entries := store.Load(context.Background())
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"id":"x"}`},
		{"null", "null"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			db.SeedRaw(storage.KeyHistory, []byte(tt.raw))

			entries := NewStore(db.Storage).Load(context.Background())
			assert.NotNil(t, entries)
			assert.Empty(t, entries)
		})
	}
}

func TestStore_LoadReadFailure(t *testing.T) {
	faulty := testutil.NewFaultyStore()
	faulty.FailReads = true

	entries := NewStore(faulty).Load(context.Background())
	assert.Empty(t, entries)
}

func TestStore_AppendPrependsAndPersists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewStore(db.Storage)
	ctx := context.Background()

	first := testutil.NewEntry("a").WithCategory("Paper").Build()
	second := testutil.NewEntry("b").WithCategory("Metal").Build()

	list := store.Append(ctx, first, store.Load(ctx))
	list = store.Append(ctx, second, list)

	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)

	assert.Equal(t, list, store.Load(ctx))
	assert.Equal(t, list, db.MustReadHistory())
}

func TestStore_AppendDoesNotMutateInput(t *testing.T) {
	store := NewStore(storage.NewMemoryStorage(), WithLimit(3))
	current := testutil.Entries(3)
	snapshot := append([]model.HistoryEntry{}, current...)

	updated := store.Append(context.Background(), testutil.NewEntry("new").Build(), current)

	assert.Equal(t, snapshot, current)
	require.Len(t, updated, 3)
	assert.Equal(t, "new", updated[0].ID)
	assert.Equal(t, "entry-1", updated[2].ID)
}

func TestStore_AppendCapsAtLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewStore(db.Storage)
	ctx := context.Background()

	list := store.Load(ctx)
	for i := 0; i < 60; i++ {
		list = store.Append(ctx, testutil.NewEntry(fmt.Sprintf("e%d", i)).Build(), list)
	}

	require.Len(t, list, DefaultLimit)
	assert.Equal(t, "e59", list[0].ID)
	assert.Equal(t, "e10", list[DefaultLimit-1].ID)

	persisted := store.Load(ctx)
	require.Len(t, persisted, DefaultLimit)
	assert.Equal(t, list, persisted)
}

func TestStore_AppendWriteFailureStillReturnsList(t *testing.T) {
	faulty := testutil.NewFaultyStore()
	faulty.FailWrites = true
	store := NewStore(faulty)
	ctx := context.Background()

	list := store.Append(ctx, testutil.NewEntry("only").Build(), nil)

	require.Len(t, list, 1)
	assert.Equal(t, "only", list[0].ID)
	assert.Equal(t, 1, faulty.WriteCount())
	assert.Empty(t, store.Load(ctx))
}

func TestStore_LoadTrimsOversizedRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	db.SeedHistory(testutil.Entries(8)...)

	entries := NewStore(db.Storage, WithLimit(5)).Load(context.Background())
	require.Len(t, entries, 5)
	assert.Equal(t, "entry-0", entries[0].ID)
	assert.Equal(t, "entry-4", entries[4].ID)
}

func TestStore_Clear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	db.SeedHistory(testutil.Entries(2)...)
	store := NewStore(db.Storage)
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))
	assert.False(t, db.HasRecord(storage.KeyHistory))
	assert.Empty(t, store.Load(ctx))

	// Clearing an empty history is not an error.
	assert.NoError(t, store.Clear(ctx))
}

func TestStore_ClearFailure(t *testing.T) {
	faulty := testutil.NewFaultyStore()
	faulty.FailDeletes = true

	err := NewStore(faulty).Clear(context.Background())
	assert.ErrorIs(t, err, testutil.ErrInjected)
}

func TestStore_RoundTripPreservesFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewStore(db.Storage)
	ctx := context.Background()

	entry := model.HistoryEntry{
		ID: "round-trip",
		ClassificationResult: model.ClassificationResult{
			Category:    "Glass: clear",
			Confidence:  "high-ish",
			DisposalTip: "Remove the lid; recycle separately.",
		},
		ImagePreview: testutil.SamplePreview,
		Timestamp:    1717243200123,
	}
	store.Append(ctx, entry, nil)

	loaded := store.Load(ctx)
	require.Len(t, loaded, 1)
	assert.Equal(t, entry, loaded[0])
}

func TestStore_PersistedJSONShape(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := NewStore(db.Storage)
	store.Append(context.Background(), testutil.NewEntry("shape").Build(), nil)

	raw, err := db.Storage.ReadRecord(context.Background(), storage.KeyHistory)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "shape",
		"category": "Plastic",
		"confidence": "90%",
		"disposalTip": "Rinse and place in the recycling bin.",
		"imagePreview": "data:image/png;base64,iVBORw0KGgo=",
		"timestamp": 1714564800000
	}]`, string(raw))
}

func TestWithLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"custom", 10, 10},
		{"zero ignored", 0, DefaultLimit},
		{"negative ignored", -3, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(storage.NewMemoryStorage(), WithLimit(tt.limit))
			assert.Equal(t, tt.want, store.Limit())
		})
	}
}

func TestFind(t *testing.T) {
	entries := testutil.Entries(4)

	found, ok := Find(entries, "entry-2")
	require.True(t, ok)
	assert.Equal(t, entries[2], found)

	_, ok = Find(entries, "missing")
	assert.False(t, ok)

	_, ok = Find(nil, "entry-0")
	assert.False(t, ok)
}
