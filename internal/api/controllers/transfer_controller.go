package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/services"
	"tripplanner/internal/transfer"
	"tripplanner/pkg/utils"
)

const maxImportBytes = 2 << 20

type TransferController struct {
	transferService services.TransferServiceInterface
}

func NewTransferController(transferService services.TransferServiceInterface) *TransferController {
	return &TransferController{
		transferService: transferService,
	}
}

// ExportTrip godoc
// @Summary Download a trip as JSON
// @Tags Import/Export
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} transfer.Document
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/export [get]
func (t *TransferController) ExportTrip(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	doc, filename, err := t.transferService.ExportTrip(c.Request.Context(), owner, ids[0])
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.IndentedJSON(http.StatusOK, doc)
}

// ArchiveExport godoc
// @Summary Store an export and get a temporary download link
// @Tags Import/Export
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 201 {object} response_models.ExportArchiveResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 501 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/export/archive [post]
func (t *TransferController) ArchiveExport(c *gin.Context) {
	owner, ids, ok := ownerAndPath(c, "tripId")
	if !ok {
		return
	}

	archive, err := t.transferService.ArchiveExport(c.Request.Context(), owner, ids[0])
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, archive, "Export archived successfully")
}

// readDocument reads the raw request body, writing the error response itself.
func readDocument(c *gin.Context) ([]byte, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(c, http.StatusRequestEntityTooLarge, "Import file is too large")
			return nil, false
		}
		utils.RespondError(c, http.StatusBadRequest, "Could not read request body")
		return nil, false
	}
	return raw, true
}

// ImportTrip godoc
// @Summary Import a trip
// @Description Creates a new trip from an exported JSON document. The whole document is validated before anything is written.
// @Tags Import/Export
// @Accept json
// @Produce json
// @Param request body transfer.Document true "Exported trip"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/import [post]
func (t *TransferController) ImportTrip(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	raw, ok := readDocument(c)
	if !ok {
		return
	}

	tripID, err := t.transferService.ApplyImport(c.Request.Context(), owner, raw)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{"trip_id": tripID}, "Trip imported successfully")
}

// ValidateImport godoc
// @Summary Check an import file
// @Description Reports whether the document is a well-formed trip export. Nothing is written.
// @Tags Import/Export
// @Accept json
// @Produce json
// @Param request body transfer.Document true "Exported trip"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/import/validate [post]
func (t *TransferController) ValidateImport(c *gin.Context) {
	if _, ok := currentOwner(c); !ok {
		return
	}
	raw, ok := readDocument(c)
	if !ok {
		return
	}

	result := gin.H{"valid": true}
	if err := transfer.Validate(raw); err != nil {
		result = gin.H{"valid": false, "error": err.Error()}
	}
	utils.RespondSuccess(c, result, "Import file checked")
}
