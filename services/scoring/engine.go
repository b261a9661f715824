// Package scoring ranks candidate contractors for a job by availability,
// rating and drive distance.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"floormatch/models"
	"floormatch/services/availability"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many contractors are scored at once.
const DefaultConcurrency = 8

var errMissingLocation = errors.New("contractor has no location")

// DistanceResolver resolves drive distance; it must not fail.
type DistanceResolver interface {
	Resolve(ctx context.Context, origin, destination models.Coordinates) models.DistanceResult
}

// Engine scores and orders contractors. It holds no per-request state.
type Engine struct {
	distance    DistanceResolver
	schedules   availability.ScheduleSource
	logger      *zap.Logger
	concurrency int
}

func NewEngine(distance DistanceResolver, schedules availability.ScheduleSource, logger *zap.Logger, concurrency int) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Engine{
		distance:    distance,
		schedules:   schedules,
		logger:      logger,
		concurrency: concurrency,
	}
}

// JobQuery describes the job the contractors are ranked against.
type JobQuery struct {
	TargetDate    time.Time
	TargetTime    int // minutes from midnight
	Location      models.Coordinates
	DurationHours float64
}

// Rank scores every contractor and returns those within range and free on the
// target date, best first. A nil or zero weights value uses the defaults.
// Contractors that cannot be scored are left out; the call itself never fails.
func (e *Engine) Rank(ctx context.Context, contractors []models.Contractor, job JobQuery, weights *models.ScoringWeights) []models.ContractorScore {
	w := models.DefaultScoringWeights()
	if weights != nil && !weights.IsZero() {
		w = *weights
	}

	results := make([]*models.ContractorScore, len(contractors))
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range contractors {
		i := i
		g.Go(func() error {
			score, err := e.scoreContractor(ctx, contractors[i], job, w)
			if err != nil {
				e.logger.Warn("contractor excluded from ranking",
					zap.String("contractorID", contractors[i].ID),
					zap.Error(err),
				)
				return nil
			}
			results[i] = score
			return nil
		})
	}
	_ = g.Wait()

	ranked := make([]models.ContractorScore, 0, len(contractors))
	for _, s := range results {
		if s != nil {
			ranked = append(ranked, *s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return Less(ranked[i], ranked[j])
	})

	e.logger.Debug("ranked contractors",
		zap.Int("candidates", len(contractors)),
		zap.Int("qualified", len(ranked)),
	)
	return ranked
}

// Less orders by overall score, then availability, then rating (all descending),
// then contractor ID ascending.
func Less(a, b models.ContractorScore) bool {
	if a.OverallScore != b.OverallScore {
		return a.OverallScore > b.OverallScore
	}
	if a.AvailabilityScore != b.AvailabilityScore {
		return a.AvailabilityScore > b.AvailabilityScore
	}
	if a.RatingScore != b.RatingScore {
		return a.RatingScore > b.RatingScore
	}
	return a.ContractorID < b.ContractorID
}

// scoreContractor returns nil without error when the contractor is out of range
// or has no free slot.
func (e *Engine) scoreContractor(ctx context.Context, c models.Contractor, job JobQuery, w models.ScoringWeights) (score *models.ContractorScore, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			score, err = nil, fmt.Errorf("scoring panicked: %v", rec)
		}
	}()

	origin, ok := c.LocationGeo.ToCoordinates()
	if !ok {
		return nil, errMissingLocation
	}

	dist := e.distance.Resolve(ctx, origin, job.Location)
	distanceScore := DistanceScore(dist.DistanceMiles)
	if distanceScore == 0 {
		return nil, nil
	}

	free, err := availability.ForDate(ctx, e.schedules, c.ID, job.TargetDate, job.DurationHours)
	if err != nil {
		return nil, err
	}
	availabilityScore, best := AvailabilityScore(free, job.TargetTime)
	if availabilityScore == 0 {
		return nil, nil
	}

	ratingScore := RatingScore(c.Rating)
	return &models.ContractorScore{
		ContractorID:      c.ID,
		OverallScore:      w.Combine(availabilityScore, ratingScore, distanceScore),
		AvailabilityScore: availabilityScore,
		RatingScore:       ratingScore,
		DistanceScore:     distanceScore,
		BestSlot:          best,
		DistanceMiles:     dist.DistanceMiles,
		DistanceSource:    dist.Source,
		Contractor:        c,
	}, nil
}
