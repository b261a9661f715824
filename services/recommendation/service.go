// Package recommendation turns a job request into a ranked contractor shortlist.
package recommendation

import (
	"context"
	"fmt"
	"math"
	"time"

	contractorRepo "floormatch/database/repository/contractor"
	"floormatch/models"
	"floormatch/services/scoring"
	"floormatch/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultCount = 5
	MaxCount     = 50

	// Straight-line distance never exceeds road distance, so nobody within
	// the scoring range is lost by this prefilter.
	DefaultCandidateRadiusMiles = 50.0

	// MongoDB's spherical radius is slightly larger than the haversine one;
	// the slack keeps boundary contractors for DistanceScore to judge.
	prefilterSlack = 1.01
)

// RecommendationService produces ranked shortlists.
type RecommendationService interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error)
}

// Ranker is implemented by *scoring.Engine.
type Ranker interface {
	Rank(ctx context.Context, contractors []models.Contractor, job scoring.JobQuery, weights *models.ScoringWeights) []models.ContractorScore
}

// RefreshScheduler queues a background retry for a fallback distance.
type RefreshScheduler interface {
	ScheduleRefresh(ctx context.Context, origin, destination models.Coordinates) error
}

// DefaultRecommendationService implements RecommendationService.
type DefaultRecommendationService struct {
	Contractors contractorRepo.ContractorRepository
	Engine      Ranker
	// Refresh is optional; nil disables background refresh of fallback distances.
	Refresh RefreshScheduler
	Logger  *zap.Logger

	CandidateRadiusMiles float64
	MaxCandidates        int
	Now                  func() time.Time
}

// validatedRequest is a request with every field parsed.
type validatedRequest struct {
	query   scoring.JobQuery
	weights *models.ScoringWeights
	count   int
}

// Recommend validates the request, ranks nearby contractors and returns the top
// entries. An empty result is not an error.
func (s *DefaultRecommendationService) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	logger := s.logger()
	v, err := validate(req)
	if err != nil {
		return nil, err
	}

	site := v.query.Location
	radius := s.CandidateRadiusMiles
	if radius <= 0 {
		radius = DefaultCandidateRadiusMiles
	}
	candidates, err := s.Contractors.FindCandidates(ctx, contractorRepo.CandidateCriteria{
		ServiceType:      req.JobType,
		Near:             &site,
		MaxDistanceMiles: radius * prefilterSlack,
		Limit:            s.MaxCandidates,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	ranked := s.Engine.Rank(ctx, candidates, v.query, v.weights)
	if len(ranked) > v.count {
		ranked = ranked[:v.count]
	}

	resp := &models.RecommendationResponse{
		RequestID:      uuid.NewString(),
		GeneratedAt:    s.now().UTC(),
		CandidateCount: len(candidates),
		Results:        make([]models.RecommendationItem, 0, len(ranked)),
	}
	for i, score := range ranked {
		resp.Results = append(resp.Results, toItem(i+1, score))
	}

	s.scheduleRefreshes(ctx, ranked, site)

	logger.Info("recommendation generated",
		zap.String("requestID", resp.RequestID),
		zap.String("jobType", req.JobType),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(resp.Results)),
	)
	return resp, nil
}

func validate(req models.RecommendationRequest) (validatedRequest, error) {
	var v validatedRequest

	date, err := time.Parse(utils.DateLayout, req.TargetDate)
	if err != nil {
		return v, newValidationError("targetDate %q must be YYYY-MM-DD", req.TargetDate)
	}
	targetTime, err := models.ParseClock(req.TargetTime)
	if err != nil {
		return v, newValidationError("targetTime: %v", err)
	}
	if req.Location == nil {
		return v, newValidationError("location is required")
	}
	site := req.Location.Coordinates()
	if err := site.Validate(); err != nil {
		return v, newValidationError("location: %v", err)
	}
	if math.IsNaN(req.DurationHours) || math.IsInf(req.DurationHours, 0) || req.DurationHours <= 0 {
		return v, newValidationError("durationHours must be positive")
	}

	v.count = req.Count
	switch {
	case v.count == 0:
		v.count = DefaultCount
	case v.count < 0 || v.count > MaxCount:
		return v, newValidationError("count must be between 1 and %d", MaxCount)
	}

	if req.Weights != nil {
		w, err := models.NewScoringWeights(req.Weights.Availability, req.Weights.Rating, req.Weights.Distance)
		if err != nil {
			return v, &RecommendationError{Code: CodeInvalidWeights, Message: err.Error()}
		}
		v.weights = &w
	}

	v.query = scoring.JobQuery{
		TargetDate:    date,
		TargetTime:    targetTime,
		Location:      site,
		DurationHours: req.DurationHours,
	}
	return v, nil
}

func toItem(rank int, score models.ContractorScore) models.RecommendationItem {
	item := models.RecommendationItem{
		Rank:           rank,
		Contractor:     score.Contractor.Summary(),
		DistanceMiles:  math.Round(score.DistanceMiles*100) / 100,
		DistanceSource: score.DistanceSource,
		Scores:         score.Breakdown(),
	}
	if score.BestSlot != nil {
		slot := models.NewSlotView(*score.BestSlot)
		item.BestSlot = &slot
	}
	return item
}

// scheduleRefreshes queues a retry for every returned distance that came from
// the great-circle fallback. Failures are logged only.
func (s *DefaultRecommendationService) scheduleRefreshes(ctx context.Context, ranked []models.ContractorScore, site models.Coordinates) {
	if s.Refresh == nil {
		return
	}
	for _, score := range ranked {
		if score.DistanceSource != models.DistanceSourceFallback {
			continue
		}
		origin, ok := score.Contractor.LocationGeo.ToCoordinates()
		if !ok {
			continue
		}
		if err := s.Refresh.ScheduleRefresh(ctx, origin, site); err != nil {
			s.logger().Warn("failed to schedule distance refresh",
				zap.String("contractorID", score.ContractorID),
				zap.Error(err),
			)
		}
	}
}

func (s *DefaultRecommendationService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultRecommendationService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
