package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type DestinationController struct {
	destinationService services.DestinationServiceInterface
}

func NewDestinationController(destinationService services.DestinationServiceInterface) *DestinationController {
	return &DestinationController{
		destinationService: destinationService,
	}
}

// CreateDestination godoc
// @Summary Add a destination
// @Description Appends a destination after the current last one unless a position is given. Duration is floored at one day.
// @Tags Destinations
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.CreateDestinationRequest true "City, duration and optional position"
// @Success 201 {object} response_models.DestinationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/destinations [post]
func (d *DestinationController) CreateDestination(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	var req request_models.CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	destination, err := d.destinationService.CreateDestination(c.Request.Context(), owner, ids[0], req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, destination, "Destination created successfully")
}

// UpdateDestination godoc
// @Summary Update a destination
// @Tags Destinations
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param destinationId path string true "Destination ID"
// @Param request body request_models.UpdateDestinationRequest true "Fields to change"
// @Success 200 {object} response_models.DestinationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/destinations/{destinationId} [patch]
func (d *DestinationController) UpdateDestination(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId", "destinationId")
	if !ok {
		return
	}

	var req request_models.UpdateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	destination, err := d.destinationService.UpdateDestination(c.Request.Context(), owner, ids[0], ids[1], req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, destination, "Destination updated successfully")
}

// DeleteDestination godoc
// @Summary Delete a destination
// @Description Removes the destination with its transport and accommodation. Remaining positions are left as they are.
// @Tags Destinations
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param destinationId path string true "Destination ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/destinations/{destinationId} [delete]
func (d *DestinationController) DeleteDestination(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId", "destinationId")
	if !ok {
		return
	}

	if err := d.destinationService.DeleteDestination(c.Request.Context(), owner, ids[0], ids[1]); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Destination deleted successfully")
}

// ReorderDestinations godoc
// @Summary Reorder destinations
// @Description ordered_ids must list every destination of the trip exactly once
// @Tags Destinations
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.ReorderDestinationsRequest true "Destination ids in the new order"
// @Success 200 {array} response_models.DestinationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/destinations/order [put]
func (d *DestinationController) ReorderDestinations(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	var req request_models.ReorderDestinationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	ordered := make([]uuid.UUID, 0, len(req.OrderedIDs))
	for _, raw := range req.OrderedIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid destination id "+raw)
			return
		}
		ordered = append(ordered, id)
	}

	destinations, err := d.destinationService.ReorderDestinations(c.Request.Context(), owner, ids[0], ordered)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, destinations, "Destinations reordered successfully")
}

// SaveDestinationDetails godoc
// @Summary Save a destination with its transport and accommodation
// @Description Writes the destination, then its arrival transport, then its accommodation. Empty transport or accommodation blocks are skipped unless a record already exists.
// @Tags Destinations
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param destinationId path string true "Destination ID"
// @Param request body request_models.SaveDestinationDetailsRequest true "Destination form"
// @Success 200 {object} response_models.DestinationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/destinations/{destinationId}/details [put]
func (d *DestinationController) SaveDestinationDetails(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId", "destinationId")
	if !ok {
		return
	}

	var req request_models.SaveDestinationDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	destination, err := d.destinationService.SaveDestinationDetails(c.Request.Context(), owner, ids[0], ids[1], req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, destination, "Destination saved successfully")
}
