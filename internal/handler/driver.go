package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/middleware"
	"rideshare/internal/service"
)

// DriverHandler handles HTTP requests for driver availability and location.
type DriverHandler struct {
	driverService *service.DriverService
	userService   *service.UserService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService, userService *service.UserService) *DriverHandler {
	return &DriverHandler{driverService: driverService, userService: userService}
}

// SetStatusRequest is the HTTP request body for changing driver availability.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateLocationRequest is the HTTP request body for a location report.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NearbyDriverResponse is a single nearby driver in the search response.
type NearbyDriverResponse struct {
	DriverID string  `json:"driver_id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// ListDrivers handles GET /v1/drivers (admin only)
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	drivers, err := h.userService.ListDrivers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]UserResponse, 0, len(drivers))
	for _, driver := range drivers {
		responses = append(responses, toUserResponse(driver))
	}

	c.JSON(http.StatusOK, responses)
}

// SetStatus handles PUT /v1/drivers/:id/status
func (h *DriverHandler) SetStatus(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, err := h.driverService.SetDriverStatus(c.Request.Context(), c.Param("id"),
		domain.DriverStatus(req.Status), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(driver))
}

// UpdateLocation handles POST /v1/drivers/:id/location
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.driverService.UpdateLocation(c.Request.Context(), service.UpdateLocationRequest{
		DriverID: c.Param("id"),
		Lat:      req.Lat,
		Lng:      req.Lng,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// FindNearby handles GET /v1/drivers/nearby?lat=&lng=&radius_km=
func (h *DriverHandler) FindNearby(c *gin.Context) {
	if _, ok := middleware.ActorFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lat"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lng"})
		return
	}

	var radiusKm float64
	if raw := c.Query("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid radius_km"})
			return
		}
	}

	drivers, err := h.driverService.FindNearby(c.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]NearbyDriverResponse, 0, len(drivers))
	for _, d := range drivers {
		responses = append(responses, NearbyDriverResponse{
			DriverID: d.DriverID,
			Lat:      d.Lat,
			Lng:      d.Lng,
		})
	}

	c.JSON(http.StatusOK, responses)
}
