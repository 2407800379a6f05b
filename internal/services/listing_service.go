package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"housewolf/portal/internal/db"
	"housewolf/portal/internal/models"
	"housewolf/portal/internal/rules"
	"housewolf/portal/internal/validation"
)

// ErrListingNotFound is returned when a listing does not exist or is not viewable.
var ErrListingNotFound = errors.New("listing not found")

// ErrNotOwner is returned when a caller tries to modify a listing they do not own.
var ErrNotOwner = errors.New("listing does not belong to caller")

// IListingService defines the interface for listing operations. Mutations
// validate the payload against the rules registry before touching storage;
// validation failures come back as validation.Errors.
type IListingService interface {
	CreateListing(ctx context.Context, ownerID string, payload map[string]any) (*models.Listing, error)
	FindListingByID(ctx context.Context, id string) (*models.Listing, error)
	UpdateListing(ctx context.Context, id, ownerID string, payload map[string]any) (*models.Listing, error)
	PurgeRemoved(ctx context.Context, retention time.Duration) (int64, error)
}

const listingsCollection = "listings"

// listingService implements IListingService.
type listingService struct {
	db         *mongo.Database
	rules      *rules.Rules
	categories ICategoryService
}

// NewListingService creates a new ListingService. The rule set is injected so
// the service and the validation layer always agree on constraints.
func NewListingService(database *mongo.Database, r *rules.Rules, categories ICategoryService) IListingService {
	return &listingService{db: database, rules: r, categories: categories}
}

// CreateListing validates a full creation payload, resolves the category
// reference against the catalog, and inserts the listing. The stored document
// is exactly the normalized shape the validation layer produced.
func (s *listingService) CreateListing(ctx context.Context, ownerID string, payload map[string]any) (*models.Listing, error) {
	n, verrs := validation.ValidateCreate(s.rules, payload)
	if len(verrs) > 0 {
		return nil, verrs
	}

	// Existence/active check is deliberately outside the validation layer,
	// which only checks referential shape.
	if _, err := s.categories.FindActiveByID(ctx, n.CategoryID); err != nil {
		return nil, err
	}

	price, err := primitive.ParseDecimal128(n.Price.StringFixed(s.rules.PriceScale))
	if err != nil {
		return nil, fmt.Errorf("failed to convert price %s: %w", n.Price.String(), err)
	}

	collection := s.db.Collection(listingsCollection)
	now := time.Now().UTC()

	var listing *models.Listing
	operation := func() error {
		listing = &models.Listing{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Title:       n.Title,
			Description: n.Description,
			Price:       price,
			Currency:    n.Currency,
			Condition:   n.Condition,
			Status:      n.Status,
			Visibility:  n.Visibility,
			CategoryID:  n.CategoryID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		_, insertErr := collection.InsertOne(ctx, listing)
		return insertErr
	}

	if err := db.Try(operation); err != nil {
		return nil, fmt.Errorf("failed to insert listing for owner %s: %w", ownerID, err)
	}
	return listing, nil
}

// FindListingByID finds a listing for public viewing. Removed and private
// listings are not viewable through this method.
func (s *listingService) FindListingByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	collection := s.db.Collection(listingsCollection)
	filter := bson.M{
		"_id":        id,
		"status":     bson.M{"$ne": models.StatusRemoved},
		"visibility": bson.M{"$ne": models.VisibilityPrivate},
	}

	err := collection.FindOne(ctx, filter).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("%w: failed to find listing %s: %v", ErrStorageUnavailable, id, err)
	}
	return &listing, nil
}

// UpdateListing validates a partial update against the listing's current
// state and applies only the validated fields. Status and visibility changes
// go through the transition tables inside the validation layer.
func (s *listingService) UpdateListing(ctx context.Context, id, ownerID string, payload map[string]any) (*models.Listing, error) {
	collection := s.db.Collection(listingsCollection)

	var existing models.Listing
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("%w: failed to load listing %s: %v", ErrStorageUnavailable, id, err)
	}
	if existing.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	n, verrs := validation.ValidateUpdate(s.rules, &existing, payload)
	if len(verrs) > 0 {
		return nil, verrs
	}

	if n.Has("category_id") {
		if _, err := s.categories.FindActiveByID(ctx, n.CategoryID); err != nil {
			return nil, err
		}
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for _, field := range n.Fields {
		switch field {
		case "title":
			set["title"] = n.Title
		case "description":
			set["description"] = n.Description
		case "price":
			price, convErr := primitive.ParseDecimal128(n.Price.StringFixed(s.rules.PriceScale))
			if convErr != nil {
				return nil, fmt.Errorf("failed to convert price %s: %w", n.Price.String(), convErr)
			}
			set["price"] = price
		case "currency":
			set["currency"] = n.Currency
		case "condition":
			set["condition"] = n.Condition
		case "status":
			set["status"] = n.Status
		case "visibility":
			set["visibility"] = n.Visibility
		case "category_id":
			set["category_id"] = n.CategoryID
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Listing
	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("%w: failed to update listing %s: %v", ErrStorageUnavailable, id, err)
	}
	return &updated, nil
}

// PurgeRemoved hard-deletes listings that have sat in status "removed" past
// the retention window. Called from the background worker.
func (s *listingService) PurgeRemoved(ctx context.Context, retention time.Duration) (int64, error) {
	collection := s.db.Collection(listingsCollection)
	cutoff := time.Now().UTC().Add(-retention)

	result, err := collection.DeleteMany(ctx, bson.M{
		"status":     models.StatusRemoved,
		"updated_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge removed listings: %w", err)
	}
	return result.DeletedCount, nil
}
