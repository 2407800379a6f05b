package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"housewolf/portal/internal/models"
)

// IFleetService defines read-only access to the fleet reference data.
type IFleetService interface {
	ListActive(ctx context.Context) ([]models.Ship, error)
}

const shipsCollection = "ships"

// fleetService implements IFleetService.
type fleetService struct {
	db *mongo.Database
}

// NewFleetService creates a new FleetService.
func NewFleetService(db *mongo.Database) IFleetService {
	return &fleetService{db: db}
}

// ListActive returns the active ships ordered by sort_order ascending.
func (s *fleetService) ListActive(ctx context.Context) ([]models.Ship, error) {
	collection := s.db.Collection(shipsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query ships: %v", ErrStorageUnavailable, err)
	}
	defer cursor.Close(ctx)

	var results []models.Ship
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("%w: failed to decode ships: %v", ErrStorageUnavailable, err)
	}
	return results, nil
}
