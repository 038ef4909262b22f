package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripplanner/internal/itinerary"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type SubEntityController struct {
	subEntityService services.SubEntityServiceInterface
}

func NewSubEntityController(subEntityService services.SubEntityServiceInterface) *SubEntityController {
	return &SubEntityController{
		subEntityService: subEntityService,
	}
}

// GetTripTransports godoc
// @Summary Departure and return transports of a trip
// @Tags Transports
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripTransportsResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/transports [get]
func (s *SubEntityController) GetTripTransports(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	legs, err := s.subEntityService.GetTripTransports(c.Request.Context(), owner, ids[0])
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, legs, "Transports fetched successfully")
}

// UpsertTripTransport godoc
// @Summary Save the departure or return transport of a trip
// @Description Nothing is stored for an empty form unless a transport already exists. data is null when nothing was stored.
// @Tags Transports
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param role path string true "departure or return"
// @Param request body request_models.TransportRequest true "Transport fields"
// @Success 200 {object} response_models.TransportResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/transports/{role} [put]
func (s *SubEntityController) UpsertTripTransport(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}

	var uri request_models.TripLegURI
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid trip id or transport role")
		return
	}
	tripID, err := uuid.Parse(uri.TripID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid tripId")
		return
	}

	var req request_models.TransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	transport, err := s.subEntityService.UpsertTransport(c.Request.Context(), owner, services.TransportUpsert{
		TripID:  &tripID,
		Role:    itinerary.TransportRole(uri.Role),
		Details: req.Details(),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, transport, "Transport saved successfully")
}

// GetDestinationTransport godoc
// @Summary Arrival transport of a destination
// @Tags Transports
// @Produce json
// @Param destinationId path string true "Destination ID"
// @Success 200 {object} response_models.TransportResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /destinations/{destinationId}/transport [get]
func (s *SubEntityController) GetDestinationTransport(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "destinationId")
	if !ok {
		return
	}

	transport, err := s.subEntityService.GetTransportByDestination(c.Request.Context(), owner, ids[0])
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, transport, "Transport fetched successfully")
}

// UpsertDestinationTransport godoc
// @Summary Save the arrival transport of a destination
// @Tags Transports
// @Accept json
// @Produce json
// @Param destinationId path string true "Destination ID"
// @Param request body request_models.TransportRequest true "Transport fields"
// @Success 200 {object} response_models.TransportResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /destinations/{destinationId}/transport [put]
func (s *SubEntityController) UpsertDestinationTransport(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "destinationId")
	if !ok {
		return
	}

	var req request_models.TransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	transport, err := s.subEntityService.UpsertTransport(c.Request.Context(), owner, services.TransportUpsert{
		DestinationID: &ids[0],
		Role:          itinerary.RoleDestination,
		Details:       req.Details(),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, transport, "Transport saved successfully")
}

// GetDestinationAccommodation godoc
// @Summary Accommodation of a destination
// @Tags Accommodations
// @Produce json
// @Param destinationId path string true "Destination ID"
// @Success 200 {object} response_models.AccommodationResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /destinations/{destinationId}/accommodation [get]
func (s *SubEntityController) GetDestinationAccommodation(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "destinationId")
	if !ok {
		return
	}

	accommodation, err := s.subEntityService.GetAccommodationByDestination(c.Request.Context(), owner, ids[0])
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accommodation, "Accommodation fetched successfully")
}

// UpsertDestinationAccommodation godoc
// @Summary Save the accommodation of a destination
// @Tags Accommodations
// @Accept json
// @Produce json
// @Param destinationId path string true "Destination ID"
// @Param request body request_models.AccommodationRequest true "Accommodation fields"
// @Success 200 {object} response_models.AccommodationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /destinations/{destinationId}/accommodation [put]
func (s *SubEntityController) UpsertDestinationAccommodation(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "destinationId")
	if !ok {
		return
	}

	var req request_models.AccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accommodation, err := s.subEntityService.UpsertAccommodation(c.Request.Context(), owner, ids[0], req.Details())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accommodation, "Accommodation saved successfully")
}
