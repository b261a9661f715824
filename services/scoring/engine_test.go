package scoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"floormatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var jobSite = models.Coordinates{Latitude: 41.88, Longitude: -87.63}

// tuesday is 2026-10-20.
var tuesday = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

type fakeResolver struct {
	mu    sync.Mutex
	miles map[float64]float64 // keyed by contractor latitude
	calls map[float64]int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{miles: map[float64]float64{}, calls: map[float64]int{}}
}

func (f *fakeResolver) Resolve(_ context.Context, origin, _ models.Coordinates) models.DistanceResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[origin.Latitude]++
	return models.DistanceResult{DistanceMiles: f.miles[origin.Latitude], Source: models.DistanceSourceAPI}
}

type fakeSchedules struct {
	mu    sync.Mutex
	hours map[string][]models.TimeSlot
	jobs  map[string][]models.Job
	fail  map[string]bool
	calls map[string]int
}

func newFakeSchedules() *fakeSchedules {
	return &fakeSchedules{
		hours: map[string][]models.TimeSlot{},
		jobs:  map[string][]models.Job{},
		fail:  map[string]bool{},
		calls: map[string]int{},
	}
}

func (f *fakeSchedules) GetWorkingHours(_ context.Context, id string, _ time.Weekday) ([]models.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[id]++
	if f.fail[id] {
		return nil, errors.New("schedule unavailable")
	}
	if h, ok := f.hours[id]; ok {
		return h, nil
	}
	return []models.TimeSlot{}, nil
}

func (f *fakeSchedules) GetCommittedJobs(_ context.Context, id, _ string) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j, ok := f.jobs[id]; ok {
		return j, nil
	}
	return []models.Job{}, nil
}

type fixture struct {
	resolver    *fakeResolver
	schedules   *fakeSchedules
	contractors []models.Contractor
}

func newFixture() *fixture {
	return &fixture{resolver: newFakeResolver(), schedules: newFakeSchedules()}
}

// add registers a contractor working 08:00-18:00 at the given distance.
func (f *fixture) add(id string, rating, miles float64) {
	lat := 40 + float64(len(f.contractors))/100
	f.contractors = append(f.contractors, models.Contractor{
		ID:          id,
		Rating:      rating,
		LocationGeo: models.Coordinates{Latitude: lat, Longitude: -87}.GeoPoint(),
	})
	f.resolver.miles[lat] = miles
	f.schedules.hours[id] = []models.TimeSlot{{Start: 8 * 60, End: 18 * 60}}
}

func (f *fixture) engine(logger *zap.Logger) *Engine {
	return NewEngine(f.resolver, f.schedules, logger, 4)
}

func query() JobQuery {
	return JobQuery{TargetDate: tuesday, TargetTime: 10 * 60, Location: jobSite, DurationHours: 2}
}

func ids(scores []models.ContractorScore) []string {
	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = s.ContractorID
	}
	return out
}

func TestDistanceScoreBreakpoints(t *testing.T) {
	assert.Equal(t, 1.0, DistanceScore(0))
	assert.Equal(t, 1.0, DistanceScore(9.99))
	assert.InDelta(t, 1.0, DistanceScore(10), 1e-9)
	assert.InDelta(t, 0.65, DistanceScore(20), 1e-9)
	assert.InDelta(t, 0.3, DistanceScore(30), 1e-9)
	assert.Equal(t, 0.2, DistanceScore(30.01))
	assert.Equal(t, 0.2, DistanceScore(50))
	assert.Equal(t, 0.0, DistanceScore(50.01))
	assert.Equal(t, 0.0, DistanceScore(51))
}

func TestDistanceScoreIsNonIncreasing(t *testing.T) {
	prev := DistanceScore(0)
	for m := 0.0; m <= 80; m += 0.05 {
		cur := DistanceScore(m)
		require.LessOrEqual(t, cur, prev+1e-12, "score rose at %.2f miles", m)
		prev = cur
	}
}

func TestRatingScoreIsNonDecreasing(t *testing.T) {
	prev := RatingScore(0)
	for r := 0.0; r <= 5.5; r += 0.05 {
		cur := RatingScore(r)
		require.GreaterOrEqual(t, cur, prev-1e-12)
		prev = cur
	}
	assert.Equal(t, 1.0, RatingScore(5))
	assert.Equal(t, 0.6, RatingScore(3))
}

func TestAvailabilityScoreTiers(t *testing.T) {
	free := []models.TimeSlot{{Start: 8 * 60, End: 10 * 60}, {Start: 13 * 60, End: 17 * 60}}

	score, best := AvailabilityScore(free, 9*60)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, free[0], *best)

	score, best = AvailabilityScore(free, 11*60)
	assert.Equal(t, 0.7, score)
	assert.Equal(t, free[1], *best)

	score, best = AvailabilityScore([]models.TimeSlot{{Start: 15 * 60, End: 17 * 60}}, 8*60)
	assert.Equal(t, 0.4, score)
	assert.Equal(t, 15*60, best.Start)

	score, best = AvailabilityScore(nil, 8*60)
	assert.Equal(t, 0.0, score)
	assert.Nil(t, best)
}

func TestAvailabilityScoreMeasuresFromSlotStart(t *testing.T) {
	// A slot ending exactly at the target does not contain it; its start is
	// 120 minutes earlier, inside the window.
	early := []models.TimeSlot{{Start: 6 * 60, End: 8 * 60}}
	score, best := AvailabilityScore(early, 8*60)
	assert.Equal(t, 0.7, score)
	assert.Equal(t, early[0], *best)

	// One minute further out falls back to the same-day tier.
	score, _ = AvailabilityScore([]models.TimeSlot{{Start: 6*60 - 1, End: 8 * 60}}, 8*60)
	assert.Equal(t, 0.4, score)

	// Equal gaps keep the earlier slot.
	tied := []models.TimeSlot{{Start: 7 * 60, End: 8 * 60}, {Start: 11 * 60, End: 13 * 60}}
	_, best = AvailabilityScore(tied, 9*60)
	assert.Equal(t, tied[0], *best)
}

func TestRankOrdersByRatingWhenOtherwiseEqual(t *testing.T) {
	f := newFixture()
	f.add("c-low", 2.0, 5)
	f.add("c-high", 5.0, 5)
	f.add("c-mid", 3.0, 5)

	ranked := f.engine(zap.NewNop()).Rank(context.Background(), f.contractors, query(), nil)
	assert.Equal(t, []string{"c-high", "c-mid", "c-low"}, ids(ranked))
	assert.InDelta(t, 0.4*1+0.3*1+0.3*1, ranked[0].OverallScore, 1e-9)
}

func TestRankExcludesContractorsBeyondRange(t *testing.T) {
	f := newFixture()
	f.add("far", 5.0, 51)
	f.add("near", 1.0, 5)

	ranked := f.engine(zap.NewNop()).Rank(context.Background(), f.contractors, query(), nil)
	assert.Equal(t, []string{"near"}, ids(ranked))
	assert.Zero(t, f.schedules.calls["far"], "availability should not be computed for out-of-range contractors")
}

func TestRankExcludesContractorsWithNoFreeSlot(t *testing.T) {
	f := newFixture()
	f.add("booked", 5.0, 5)
	f.add("off", 5.0, 5)
	f.add("free", 1.0, 5)
	f.schedules.jobs["booked"] = []models.Job{{Start: 8 * 60, DurationHours: 10, Status: models.JobStatusAssigned}}
	f.schedules.hours["off"] = []models.TimeSlot{}

	ranked := f.engine(zap.NewNop()).Rank(context.Background(), f.contractors, query(), nil)
	assert.Equal(t, []string{"free"}, ids(ranked))
}

func TestRankSkipsFailingContractorWithoutAbortingBatch(t *testing.T) {
	f := newFixture()
	f.add("broken", 5.0, 5)
	f.add("ok", 4.0, 5)
	f.schedules.fail["broken"] = true
	f.contractors = append(f.contractors, models.Contractor{ID: "nowhere", Rating: 5})

	core, logs := observer.New(zapcore.WarnLevel)
	ranked := f.engine(zap.New(core)).Rank(context.Background(), f.contractors, query(), nil)
	assert.Equal(t, []string{"ok"}, ids(ranked))
	assert.Equal(t, 2, logs.FilterMessage("contractor excluded from ranking").Len())
}

func TestRankTieBreaksOnContractorID(t *testing.T) {
	f := newFixture()
	f.add("c-b", 3.0, 5)
	f.add("c-a", 3.0, 5)
	f.add("c-c", 3.0, 5)

	ranked := f.engine(zap.NewNop()).Rank(context.Background(), f.contractors, query(), nil)
	assert.Equal(t, []string{"c-a", "c-b", "c-c"}, ids(ranked))
}

func TestLessChain(t *testing.T) {
	base := models.ContractorScore{ContractorID: "m", OverallScore: 0.5, AvailabilityScore: 0.7, RatingScore: 0.6}

	higher := base
	higher.OverallScore = 0.6
	assert.True(t, Less(higher, base))

	moreAvailable := base
	moreAvailable.AvailabilityScore = 1.0
	assert.True(t, Less(moreAvailable, base))

	betterRated := base
	betterRated.RatingScore = 0.8
	assert.True(t, Less(betterRated, base))

	earlierID := base
	earlierID.ContractorID = "a"
	assert.True(t, Less(earlierID, base))
	assert.False(t, Less(base, base))
}

func TestRankUsesSuppliedWeights(t *testing.T) {
	f := newFixture()
	f.add("close-poor", 1.0, 2)
	f.add("far-great", 5.0, 40)

	distanceHeavy, err := models.NewScoringWeights(0.1, 0.1, 0.8)
	require.NoError(t, err)
	ranked := f.engine(zap.NewNop()).Rank(context.Background(), f.contractors, query(), &distanceHeavy)
	assert.Equal(t, []string{"close-poor", "far-great"}, ids(ranked))

	ratingHeavy, err := models.NewScoringWeights(0.1, 0.8, 0.1)
	require.NoError(t, err)
	ranked = f.engine(zap.NewNop()).Rank(context.Background(), f.contractors, query(), &ratingHeavy)
	assert.Equal(t, []string{"far-great", "close-poor"}, ids(ranked))
}

func TestRankIsDeterministicUnderConcurrency(t *testing.T) {
	f := newFixture()
	for i := 0; i < 40; i++ {
		f.add(fmt.Sprintf("c-%02d", i), float64(i%6), float64(i%4)*8)
	}
	e := f.engine(zap.NewNop())
	want := ids(e.Rank(context.Background(), f.contractors, query(), nil))
	require.Len(t, want, 40)
	for run := 0; run < 10; run++ {
		assert.Equal(t, want, ids(e.Rank(context.Background(), f.contractors, query(), nil)))
	}
}

func TestRankCarriesDistanceSourceAndBestSlot(t *testing.T) {
	f := newFixture()
	f.add("c-1", 4.0, 12)

	ranked := f.engine(zap.NewNop()).Rank(context.Background(), f.contractors, query(), nil)
	require.Len(t, ranked, 1)
	assert.Equal(t, models.DistanceSourceAPI, ranked[0].DistanceSource)
	assert.Equal(t, 12.0, ranked[0].DistanceMiles)
	require.NotNil(t, ranked[0].BestSlot)
	assert.Equal(t, models.TimeSlot{Start: 8 * 60, End: 18 * 60}, *ranked[0].BestSlot)
}

func TestRankEmptyInput(t *testing.T) {
	ranked := newFixture().engine(nil).Rank(context.Background(), nil, query(), nil)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}
