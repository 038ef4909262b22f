package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripplanner/pkg/middleware"
	"tripplanner/pkg/utils"
)

// currentOwner writes a 401 and returns false when the request carries no
// authenticated account.
func currentOwner(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil || id == uuid.Nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// ownerAndPath resolves the caller plus the named path ids, in order.
func ownerAndPath(c *gin.Context, names ...string) (uuid.UUID, []uuid.UUID, bool) {
	owner, ok := currentOwner(c)
	if !ok {
		return uuid.Nil, nil, false
	}
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, ok := pathUUID(c, name)
		if !ok {
			return uuid.Nil, nil, false
		}
		ids = append(ids, id)
	}
	return owner, ids, true
}
