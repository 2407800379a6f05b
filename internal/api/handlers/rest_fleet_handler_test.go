package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"housewolf/portal/internal/api/handlers"
	"housewolf/portal/internal/models"
	"housewolf/portal/internal/services"
)

func TestRestFleetHandler_GetFleet_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockFleetSvc := new(MockFleetService)
	handler := handlers.NewRestFleetHandler(mockFleetSvc)

	r := gin.New()
	r.GET("/v1/fleet", handler.GetFleet)

	mockFleetSvc.On("ListActive", mock.Anything).Return([]models.Ship{
		{ID: "s1", Name: "Carrack", Manufacturer: "Anvil", Role: "exploration", Active: true},
		{ID: "s2", Name: "Hammerhead", Manufacturer: "Aegis", Role: "gunship", Active: true},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/fleet", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var respBody []models.ShipAPIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	require.Len(t, respBody, 2)
	assert.Equal(t, "Carrack", respBody[0].Name)
	assert.Equal(t, "Aegis", respBody[1].Manufacturer)
	mockFleetSvc.AssertExpectations(t)
}

func TestRestFleetHandler_GetFleet_StorageUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockFleetSvc := new(MockFleetService)
	handler := handlers.NewRestFleetHandler(mockFleetSvc)

	r := gin.New()
	r.GET("/v1/fleet", handler.GetFleet)

	mockFleetSvc.On("ListActive", mock.Anything).Return(nil, services.ErrStorageUnavailable)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/fleet", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	mockFleetSvc.AssertExpectations(t)
}
