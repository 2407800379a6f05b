package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"housewolf/portal/internal/api/middleware"
	"housewolf/portal/internal/services"
	"housewolf/portal/internal/validation"
)

// RestListingHandler handles listing CRUD and lifecycle endpoints.
type RestListingHandler struct {
	listingService services.IListingService
}

// NewRestListingHandler creates a new RestListingHandler.
func NewRestListingHandler(listingService services.IListingService) *RestListingHandler {
	return &RestListingHandler{listingService: listingService}
}

// bindPayload decodes the request body into a loose payload map. UseNumber
// keeps price literals as json.Number so the validation layer sees the exact
// scale the client wrote, not a float64 approximation.
func bindPayload(c *gin.Context) (map[string]any, bool) {
	var payload map[string]any
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}
	return payload, true
}

// writeListingError maps service-layer errors onto HTTP responses. Validation
// failures carry the complete field-error set so a client can fix everything
// in one round trip.
func writeListingError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
	case errors.Is(err, services.ErrCategoryNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Category not found or inactive"})
	case errors.Is(err, services.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Listing does not belong to you"})
	case errors.Is(err, services.ErrStorageUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// GetListingByID handles GET /v1/listing/:id
func (h *RestListingHandler) GetListingByID(c *gin.Context) {
	listing, err := h.listingService.FindListingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// CreateListing handles POST /v1/listing (authenticated).
func (h *RestListingHandler) CreateListing(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	ownerID := c.GetString(middleware.ContextKeyUserID)

	listing, err := h.listingService.CreateListing(c.Request.Context(), ownerID, payload)
	if err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// UpdateListing handles PATCH /v1/listing/:id (authenticated). Only supplied
// fields are validated and applied.
func (h *RestListingHandler) UpdateListing(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	ownerID := c.GetString(middleware.ContextKeyUserID)

	listing, err := h.listingService.UpdateListing(c.Request.Context(), c.Param("id"), ownerID, payload)
	if err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// ChangeStatus handles POST /v1/listing/:id/status (authenticated). The
// target status goes through the same transition check as any other update.
func (h *RestListingHandler) ChangeStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	ownerID := c.GetString(middleware.ContextKeyUserID)

	listing, err := h.listingService.UpdateListing(c.Request.Context(), c.Param("id"), ownerID,
		map[string]any{"status": req.Status})
	if err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}
