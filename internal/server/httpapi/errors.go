package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/docportal/internal/common"
	"github.com/dmitrijs2005/docportal/internal/server/documents"
	"github.com/gin-gonic/gin"
)

const (
	MsgInvalidCredentials = "invalid credentials"
	MsgOdooUnauthorized   = "invalid credentials or Odoo connection problem"
	MsgSessionRequired    = "missing or invalid session token"
	MsgBodyTooLarge       = "request body too large"
	MsgUploadFailed       = "failed to upload file to Odoo"
	MsgContactsFailed     = "failed to list contacts"
	MsgFoldersFailed      = "failed to list document folders"
	MsgJournalFailed      = "failed to read upload journal"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError maps workflow errors to status codes:
// validation 400, authentication 401, everything else 500 with details.
func writeError(c *gin.Context, err error, fallback string) {
	var verr *documents.ValidationError
	var cerr *documents.CreateError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Error()})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: MsgOdooUnauthorized})
	case errors.As(err, &cerr):
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "failed to create " + cerr.Model,
			Details: cerr.Err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: fallback, Details: err.Error()})
	}
}

func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
