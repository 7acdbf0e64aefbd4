package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/storage"
	"github.com/Veraticus/waste-wise/internal/testutil"
)

func newTestEngine(t *testing.T, start time.Time) (*Engine, *testutil.TestDB, *testutil.ManualClock) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	clock := testutil.NewManualClock(start)
	engine := NewEngine(db.Storage, WithClock(clock), WithLocation(start.Location()))
	return engine, db, clock
}

func TestEngine_CurrentFresh(t *testing.T) {
	engine, db, _ := newTestEngine(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, model.Stats{}, engine.Current(context.Background()))
	assert.False(t, db.HasRecord(storage.KeyStats))
}

func TestEngine_CurrentCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "nope"},
		{"array", "[1,2]"},
		{"negative streak", `{"total":3,"streak":-1,"lastClassification":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, db, _ := newTestEngine(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
			db.SeedRaw(storage.KeyStats, []byte(tt.raw))

			assert.Equal(t, model.Stats{}, engine.Current(context.Background()))
		})
	}
}

func TestEngine_FirstClassification(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	engine, db, _ := newTestEngine(t, now)

	s := engine.RecordClassification(context.Background())

	assert.Equal(t, model.Stats{Total: 1, Streak: 1, LastClassification: now.UnixMilli()}, s)
	assert.Equal(t, s, db.MustReadStats())
}

func TestEngine_SameDayKeepsStreak(t *testing.T) {
	engine, _, clock := newTestEngine(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	engine.RecordClassification(ctx)
	clock.Advance(10 * time.Hour)
	s := engine.RecordClassification(ctx)

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Streak)
	assert.Equal(t, clock.Now().UnixMilli(), s.LastClassification)
}

func TestEngine_ConsecutiveDaysIncrement(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	engine, _, clock := newTestEngine(t, time.Date(2024, 5, 1, 23, 59, 0, 0, ny))
	ctx := context.Background()

	engine.RecordClassification(ctx)

	// One minute later is the next calendar day.
	clock.Advance(time.Minute)
	s := engine.RecordClassification(ctx)
	assert.Equal(t, 2, s.Streak)

	clock.Set(time.Date(2024, 5, 3, 21, 0, 0, 0, ny))
	s = engine.RecordClassification(ctx)
	assert.Equal(t, 3, s.Streak)
	assert.Equal(t, 3, s.Total)
}

func TestEngine_GapRestartsAtOne(t *testing.T) {
	engine, db, clock := newTestEngine(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	db.SeedStats(model.Stats{Total: 9, Streak: 4, LastClassification: clock.Now().UnixMilli()})

	clock.Set(time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC))
	s := engine.RecordClassification(ctx)

	assert.Equal(t, 1, s.Streak)
	assert.Equal(t, 10, s.Total)
}

func TestEngine_CurrentResetsLapsedStreak(t *testing.T) {
	engine, db, clock := newTestEngine(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	last := clock.Now().UnixMilli()
	db.SeedStats(model.Stats{Total: 7, Streak: 3, LastClassification: last})

	clock.Set(time.Date(2024, 5, 3, 0, 1, 0, 0, time.UTC))
	s := engine.Current(context.Background())

	want := model.Stats{Total: 7, Streak: 0, LastClassification: last}
	assert.Equal(t, want, s)
	assert.Equal(t, want, db.MustReadStats(), "reset must be persisted immediately")
}

func TestEngine_CurrentKeepsLiveStreak(t *testing.T) {
	tests := []struct {
		now  time.Time
		name string
	}{
		{name: "same day", now: time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)},
		{name: "next day", now: time.Date(2024, 5, 2, 23, 59, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, db, clock := newTestEngine(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
			seeded := model.Stats{Total: 5, Streak: 2, LastClassification: clock.Now().UnixMilli()}
			db.SeedStats(seeded)

			clock.Set(tt.now)
			assert.Equal(t, seeded, engine.Current(context.Background()))
		})
	}
}

func TestEngine_CurrentSkipsWriteWhenAlreadyZero(t *testing.T) {
	faulty := testutil.NewFaultyStore()
	clock := testutil.NewManualClock(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	engine := NewEngine(faulty, WithClock(clock), WithLocation(time.UTC))
	ctx := context.Background()

	seeded := model.Stats{
		Total:              4,
		Streak:             0,
		LastClassification: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
	}
	require.NoError(t, NewEngine(faulty).save(ctx, seeded))
	writes := faulty.WriteCount()

	assert.Equal(t, seeded, engine.Current(ctx))
	assert.Equal(t, writes, faulty.WriteCount())
}

func TestEngine_ZeroStreakSameDayCountsToday(t *testing.T) {
	engine, db, clock := newTestEngine(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	db.SeedStats(model.Stats{Total: 2, Streak: 0, LastClassification: clock.Now().UnixMilli()})

	clock.Advance(time.Hour)
	s := engine.RecordClassification(context.Background())

	assert.Equal(t, 1, s.Streak)
	assert.Equal(t, 3, s.Total)
}

func TestEngine_DSTTransitions(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		last, now  time.Time
		name       string
		wantStreak int
	}{
		{
			name:       "spring forward counts as consecutive",
			last:       time.Date(2024, 3, 10, 12, 0, 0, 0, ny),
			now:        time.Date(2024, 3, 11, 0, 30, 0, 0, ny),
			wantStreak: 3,
		},
		{
			name:       "fall back counts as consecutive",
			last:       time.Date(2024, 11, 2, 18, 0, 0, 0, ny),
			now:        time.Date(2024, 11, 3, 23, 30, 0, 0, ny),
			wantStreak: 3,
		},
		{
			name:       "short day skipped is a gap",
			last:       time.Date(2024, 3, 9, 23, 30, 0, 0, ny),
			now:        time.Date(2024, 3, 11, 0, 10, 0, 0, ny),
			wantStreak: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, db, _ := newTestEngine(t, tt.now)
			db.SeedStats(model.Stats{Total: 10, Streak: 2, LastClassification: tt.last.UnixMilli()})

			s := engine.RecordClassification(context.Background())
			assert.Equal(t, tt.wantStreak, s.Streak)
			assert.Equal(t, 11, s.Total)
		})
	}
}

func TestEngine_MonthAndYearRollover(t *testing.T) {
	tests := []struct {
		last, now time.Time
		name      string
	}{
		{
			name: "month",
			last: time.Date(2024, 4, 30, 20, 0, 0, 0, time.UTC),
			now:  time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC),
		},
		{
			name: "year",
			last: time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC),
			now:  time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "leap day",
			last: time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC),
			now:  time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, db, _ := newTestEngine(t, tt.now)
			db.SeedStats(model.Stats{Total: 1, Streak: 1, LastClassification: tt.last.UnixMilli()})

			assert.Equal(t, 2, engine.RecordClassification(context.Background()).Streak)
		})
	}
}

func TestEngine_WriteFailureStillReturnsStats(t *testing.T) {
	faulty := testutil.NewFaultyStore()
	faulty.FailWrites = true
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	engine := NewEngine(faulty, WithClock(testutil.NewManualClock(now)), WithLocation(time.UTC))

	s := engine.RecordClassification(context.Background())
	assert.Equal(t, model.Stats{Total: 1, Streak: 1, LastClassification: now.UnixMilli()}, s)
}

func TestEngine_TotalNeverDecreases(t *testing.T) {
	engine, _, clock := newTestEngine(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	steps := []time.Duration{time.Hour, 30 * time.Hour, 72 * time.Hour, time.Minute, 24 * time.Hour}
	prev := 0
	for i, step := range steps {
		s := engine.RecordClassification(ctx)
		assert.Equal(t, prev+1, s.Total, "step %d", i)
		assert.GreaterOrEqual(t, s.Streak, 1)
		prev = s.Total

		clock.Advance(step)
		assert.GreaterOrEqual(t, engine.Current(ctx).Streak, 0)
		assert.Equal(t, prev, engine.Current(ctx).Total)
	}
}

func TestEngine_Reset(t *testing.T) {
	engine, db, _ := newTestEngine(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	engine.RecordClassification(ctx)
	require.NoError(t, engine.Reset(ctx))

	assert.False(t, db.HasRecord(storage.KeyStats))
	assert.Equal(t, model.Stats{}, engine.Current(ctx))
	assert.NoError(t, engine.Reset(ctx))
}

func TestEngine_PersistedJSONShape(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	engine, db, _ := newTestEngine(t, now)
	engine.RecordClassification(context.Background())

	raw, err := db.Storage.ReadRecord(context.Background(), storage.KeyStats)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":1,"streak":1,"lastClassification":1714564800000}`, string(raw))
}
