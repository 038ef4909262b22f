package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Create an empty trip. A blank title falls back to the default title.
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest false "Trip title"
// @Success 201 {object} response_models.TripDetailResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}

	var req request_models.CreateTripRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), owner, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, trip, "Trip created successfully")
}

// ListTrips godoc
// @Summary List trips
// @Description Trips of the authenticated account, newest first
// @Tags Trips
// @Produce json
// @Success 200 {array} response_models.TripSummaryResponse
// @Security BearerAuth
// @Router /trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}

	trips, err := t.tripService.ListTrips(c.Request.Context(), owner)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetTrip godoc
// @Summary Get a trip
// @Description Trip with ordered destinations, their details and derived dates
// @Tags Trips
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	trip, err := t.tripService.GetTrip(c.Request.Context(), owner, ids[0])
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// UpdateTrip godoc
// @Summary Update a trip
// @Description Patch title, start date, departure city or return city. Explicit null clears start date and return city.
// @Tags Trips
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.UpdateTripRequest true "Fields to change"
// @Success 200 {object} response_models.TripDetailResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [patch]
func (t *TripController) UpdateTrip(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.UpdateTrip(c.Request.Context(), owner, ids[0], req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip updated successfully")
}

// DeleteTrip godoc
// @Summary Delete a trip
// @Description Deletes the trip with its destinations, transports, accommodations and share links
// @Tags Trips
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [delete]
func (t *TripController) DeleteTrip(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	if err := t.tripService.DeleteTrip(c.Request.Context(), owner, ids[0]); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip deleted successfully")
}

// AdjustEndDate godoc
// @Summary Change the trip end date
// @Description Validates a proposed end date against the planned days. Spare days are appended as a new destination or added to the last one.
// @Tags Trips
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.AdjustEndDateRequest true "Proposed end date and policy"
// @Success 200 {object} response_models.EndDateAdjustmentResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/end-date [post]
func (t *TripController) AdjustEndDate(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	var req request_models.AdjustEndDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := t.tripService.AdjustEndDate(c.Request.Context(), owner, ids[0], req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "End date adjusted"
	if !result.Valid {
		message = "End date rejected"
	}
	utils.RespondSuccess(c, result, message)
}
