package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"housewolf/portal/internal/models"
	"housewolf/portal/internal/utils"
)

func setupTestDBCategory(t *testing.T, dbName string) *mongo.Database {
	return utils.SetupTestDB(t, dbName, "categories")
}

func insertCategory(t *testing.T, db *mongo.Database, name, slug string, active bool, sortOrder int) models.Category {
	t.Helper()
	cat := models.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		Active:    active,
		SortOrder: sortOrder,
	}
	_, err := db.Collection("categories").InsertOne(context.Background(), cat)
	require.NoError(t, err)
	return cat
}

func TestCategoryService_ListActive_OrderAndFiltering(t *testing.T) {
	db := setupTestDBCategory(t, "testdb_category_service_list")
	svc := NewCategoryService(db)
	ctx := context.Background()

	// Sort orders [3, 1, 2] with the third category inactive: only the two
	// active ones come back, ordered 1 then 3.
	insertCategory(t, db, "Ships", "ships", true, 3)
	insertCategory(t, db, "Weapons", "weapons", true, 1)
	insertCategory(t, db, "Armor", "armor", false, 2)

	categories, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Weapons", categories[0].Name)
	assert.Equal(t, "Ships", categories[1].Name)
}

func TestCategoryService_ListActive_Empty(t *testing.T) {
	db := setupTestDBCategory(t, "testdb_category_service_empty")
	svc := NewCategoryService(db)

	categories, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCategoryService_FindActiveByID(t *testing.T) {
	db := setupTestDBCategory(t, "testdb_category_service_find")
	svc := NewCategoryService(db)
	ctx := context.Background()

	active := insertCategory(t, db, "Components", "components", true, 1)
	inactive := insertCategory(t, db, "Retired", "retired", false, 2)

	found, err := svc.FindActiveByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.Slug, found.Slug)

	_, err = svc.FindActiveByID(ctx, inactive.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = svc.FindActiveByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
