package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"housewolf/portal/internal/models"
	"housewolf/portal/internal/services"
)

// RestFleetHandler handles requests for the fleet viewer endpoint.
type RestFleetHandler struct {
	fleetService services.IFleetService
}

// NewRestFleetHandler creates a new RestFleetHandler.
func NewRestFleetHandler(fleetService services.IFleetService) *RestFleetHandler {
	return &RestFleetHandler{fleetService: fleetService}
}

// GetFleet handles GET /v1/fleet.
func (h *RestFleetHandler) GetFleet(c *gin.Context) {
	ships, err := h.fleetService.ListActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, services.ErrStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Fleet data unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fleet"})
		return
	}

	results := make([]models.ShipAPIResponse, 0, len(ships))
	for _, ship := range ships {
		results = append(results, models.ShipAPIResponse{
			ID:           ship.ID,
			Name:         ship.Name,
			Manufacturer: ship.Manufacturer,
			Role:         ship.Role,
		})
	}
	c.JSON(http.StatusOK, results)
}
