package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"housewolf/portal/internal/models"
)

// ErrStorageUnavailable marks a failure to reach persistent storage. There is
// no stale or partial fallback: callers surface it as a service-level error,
// and any retry policy belongs to them.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrCategoryNotFound is returned when a category does not exist or is not active.
var ErrCategoryNotFound = errors.New("category not found or inactive")

// ICategoryService defines read-only access to the category catalog.
type ICategoryService interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	FindActiveByID(ctx context.Context, id string) (*models.Category, error)
}

const categoriesCollection = "categories"

// categoryService implements ICategoryService.
type categoryService struct {
	db *mongo.Database
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *mongo.Database) ICategoryService {
	return &categoryService{db: db}
}

// ListActive returns the active categories ordered by sort_order ascending.
// Ties keep insertion order (Mongo natural order within equal sort keys).
func (s *categoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	collection := s.db.Collection(categoriesCollection)

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query categories: %v", ErrStorageUnavailable, err)
	}
	defer cursor.Close(ctx)

	var results []models.Category
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("%w: failed to decode categories: %v", ErrStorageUnavailable, err)
	}
	return results, nil
}

// FindActiveByID resolves a category reference, requiring active = true.
func (s *categoryService) FindActiveByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	collection := s.db.Collection(categoriesCollection)

	err := collection.FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: failed to look up category %s: %v", ErrStorageUnavailable, id, err)
	}
	return &category, nil
}
