package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type ShareController struct {
	shareService services.ShareServiceInterface
}

func NewShareController(shareService services.ShareServiceInterface) *ShareController {
	return &ShareController{
		shareService: shareService,
	}
}

// IssueShareLink godoc
// @Summary Create a share link
// @Description Issues a new read-only link for the trip. Unknown locales fall back to the default one.
// @Tags Shares
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.IssueShareLinkRequest false "Locale of the share page"
// @Success 201 {object} response_models.ShareLinkResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/shares [post]
func (s *ShareController) IssueShareLink(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	var req request_models.IssueShareLinkRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	link, err := s.shareService.IssueShareLink(c.Request.Context(), owner, ids[0], req.Locale)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, link, "Share link created successfully")
}

// ListShareLinks godoc
// @Summary List the share links of a trip
// @Tags Shares
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {array} response_models.ShareLinkResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/shares [get]
func (s *ShareController) ListShareLinks(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	links, err := s.shareService.ListShareLinks(c.Request.Context(), owner, ids[0])
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, links, "Share links fetched successfully")
}

// DeactivateShareLink godoc
// @Summary Deactivate a share link
// @Description The link stops resolving immediately. Deactivating twice is not an error.
// @Tags Shares
// @Produce json
// @Param shareId path string true "Share link ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shares/{shareId} [delete]
func (s *ShareController) DeactivateShareLink(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "shareId")
	if !ok {
		return
	}

	if err := s.shareService.DeactivateShareLink(c.Request.Context(), owner, ids[0]); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Share link deactivated")
}

// ShareLinkQRCode godoc
// @Summary QR code of a share link
// @Tags Shares
// @Produce jpeg
// @Param shareId path string true "Share link ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shares/{shareId}/qr [get]
func (s *ShareController) ShareLinkQRCode(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "shareId")
	if !ok {
		return
	}

	img, err := s.shareService.ShareLinkQRCode(c.Request.Context(), owner, ids[0])
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/jpeg", img)
}

// SendShareInvite godoc
// @Summary E-mail a share link
// @Tags Shares
// @Accept json
// @Produce json
// @Param shareId path string true "Share link ID"
// @Param request body request_models.ShareInviteRequest true "Recipient and optional message"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 501 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shares/{shareId}/invite [post]
func (s *ShareController) SendShareInvite(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "shareId")
	if !ok {
		return
	}

	var req request_models.ShareInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := s.shareService.SendShareInvite(c.Request.Context(), owner, ids[0], req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Invitation sent")
}

// ResolveSharedTrip godoc
// @Summary Open a shared trip
// @Description Public, read-only view of a trip. Unknown, inactive and expired links all return 404.
// @Tags Shares
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} response_models.TripDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Router /public/shares/{token} [get]
func (s *ShareController) ResolveSharedTrip(c *gin.Context) {
	trip, err := s.shareService.ResolveSharedTrip(c.Request.Context(), c.Param("token"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Shared trip fetched successfully")
}
