package contractorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"floormatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	collectionName = "contractors"
	metersPerMile  = 1609.344
	queryTimeout   = 5 * time.Second
)

// MongoContractorRepo implements ContractorRepository using MongoDB.
type MongoContractorRepo struct {
	coll *mongo.Collection
}

// NewMongoContractorRepo creates a ContractorRepository backed by db.
func NewMongoContractorRepo(db *mongo.Database, logger *zap.Logger) ContractorRepository {
	repo := &MongoContractorRepo{coll: db.Collection(collectionName)}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create contractor indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoContractorRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "serviceTypes", Value: 1}}},
		{Keys: bson.D{{Key: "locationGeo", Value: "2dsphere"}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a contractor by its unique ID.
func (r *MongoContractorRepo) GetByID(ctx context.Context, id string) (*models.Contractor, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c models.Contractor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContractorNotFound
		}
		return nil, fmt.Errorf("failed to fetch contractor %s: %w", id, err)
	}
	return &c, nil
}

// FindCandidates returns active contractors matching the criteria, nearest
// first when a location is given.
func (r *MongoContractorRepo) FindCandidates(ctx context.Context, criteria CandidateCriteria) ([]models.Contractor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find()
	if criteria.Limit > 0 {
		opts.SetLimit(int64(criteria.Limit))
	}

	cursor, err := r.coll.Find(ctx, candidateFilter(criteria), opts)
	if err != nil {
		return nil, fmt.Errorf("candidate query failed: %w", err)
	}
	defer cursor.Close(ctx)

	contractors := []models.Contractor{}
	if err := cursor.All(ctx, &contractors); err != nil {
		return nil, fmt.Errorf("failed to decode contractors: %w", err)
	}
	return contractors, nil
}

func candidateFilter(criteria CandidateCriteria) bson.M {
	filter := bson.M{"status": models.ContractorStatusActive}
	if criteria.ServiceType != "" {
		filter["serviceTypes"] = criteria.ServiceType
	}
	if criteria.Near != nil {
		near := bson.M{"$geometry": criteria.Near.GeoPoint()}
		if criteria.MaxDistanceMiles > 0 {
			near["$maxDistance"] = criteria.MaxDistanceMiles * metersPerMile
		}
		filter["locationGeo"] = bson.M{"$nearSphere": near}
	}
	return filter
}
