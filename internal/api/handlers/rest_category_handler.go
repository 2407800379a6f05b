package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"housewolf/portal/internal/models"
	"housewolf/portal/internal/services"
)

// RestCategoryHandler handles requests for the category catalog endpoint.
type RestCategoryHandler struct {
	categoryService services.ICategoryService
}

// NewRestCategoryHandler creates a new RestCategoryHandler.
func NewRestCategoryHandler(categoryService services.ICategoryService) *RestCategoryHandler {
	return &RestCategoryHandler{categoryService: categoryService}
}

// GetCategories handles GET /v1/categories. Returns the active categories as
// a JSON array of {id, name, slug}, ordered for display.
func (h *RestCategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, services.ErrStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Category catalog unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	results := make([]models.CategoryAPIResponse, 0, len(categories))
	for _, cat := range categories {
		results = append(results, models.CategoryAPIResponse{
			ID:   cat.ID,
			Name: cat.Name,
			Slug: cat.Slug,
		})
	}
	c.JSON(http.StatusOK, results)
}
