package contractorRepo

import (
	"context"
	"errors"

	"floormatch/models"
)

// ErrContractorNotFound is returned by GetByID for unknown IDs.
var ErrContractorNotFound = errors.New("contractor not found")

// CandidateCriteria narrows the contractors considered for a job.
type CandidateCriteria struct {
	// Only contractors offering this service type (e.g. "hardwood"). Empty matches all.
	ServiceType string
	// Center of the geospatial search; nil disables it.
	Near *models.Coordinates
	// Straight-line radius around Near, in miles. Zero means unbounded.
	MaxDistanceMiles float64
	// Maximum number of contractors returned. Zero means no limit.
	Limit int
}

// ContractorRepository is read-only access to contractor records.
type ContractorRepository interface {
	// GetByID retrieves a contractor by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Contractor, error)
	// FindCandidates returns active contractors matching the criteria.
	FindCandidates(ctx context.Context, criteria CandidateCriteria) ([]models.Contractor, error)
}
