package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/docportal/internal/server/auth"
	"github.com/dmitrijs2005/docportal/internal/server/documents"
	"github.com/dmitrijs2005/docportal/internal/server/journal"
	"github.com/dmitrijs2005/docportal/internal/server/odoo"
	"github.com/gin-gonic/gin"
)

const (
	defaultUploadsLimit = 20
	maxUploadsLimit     = 200
)

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

type uploadResponse struct {
	Message      string `json:"message"`
	AttachmentID int64  `json:"attachmentId"`
	DocumentID   int64  `json:"documentId"`
	FolderID     int64  `json:"folderId"`
}

func (s *Server) handleLogin(c *gin.Context) {
	// Unreadable bodies count as empty credentials.
	var creds auth.Credentials
	_ = c.ShouldBindJSON(&creds)

	ok := s.deps.Credentials != nil && s.deps.Credentials.Check(creds.Username, creds.Password)
	if s.deps.Logins != nil {
		s.deps.Logins.ObserveLogin(ok)
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, loginResponse{Success: false, Message: MsgInvalidCredentials})
		return
	}

	resp := loginResponse{Success: true}
	if s.deps.Tokens != nil {
		token, err := s.deps.Tokens.Issue(creds.Username)
		if err != nil {
			s.logger.Error(c.Request.Context(), "token issue failed", "error", err)
			c.JSON(http.StatusInternalServerError, loginResponse{Success: false, Message: err.Error()})
			return
		}
		resp.Token = token
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleContacts(c *gin.Context) {
	partners, err := s.deps.Directory.ListContacts(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "list contacts failed", "error", err, "request_id", getRequestID(c))
		writeError(c, err, MsgContactsFailed)
		return
	}
	if partners == nil {
		partners = []odoo.Partner{}
	}
	c.JSON(http.StatusOK, gin.H{"partners": partners})
}

func (s *Server) handleFolders(c *gin.Context) {
	folders, err := s.deps.Directory.ListFolders(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "list folders failed", "error", err, "request_id", getRequestID(c))
		writeError(c, err, MsgFoldersFailed)
		return
	}
	if folders == nil {
		folders = []odoo.Folder{}
	}
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

func (s *Server) handleUpload(c *gin.Context) {
	var req documents.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: MsgBodyTooLarge})
			return
		}
		// A malformed body is validated like an empty one.
		req = documents.UploadRequest{}
	}

	res, err := s.deps.Uploader.Upload(c.Request.Context(), req, getRequestID(c))
	if err != nil {
		writeError(c, err, MsgUploadFailed)
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		Message:      documents.SuccessMessage,
		AttachmentID: res.AttachmentID,
		DocumentID:   res.DocumentID,
		FolderID:     res.FolderID,
	})
}

func (s *Server) handleUploads(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	records := []*journal.Record{}
	if s.deps.Journal != nil {
		recent, err := s.deps.Journal.Recent(c.Request.Context(), limit)
		if err != nil {
			writeError(c, err, MsgJournalFailed)
			return
		}
		if recent != nil {
			records = recent
		}
	}
	c.JSON(http.StatusOK, gin.H{"uploads": records})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultUploadsLimit
	}
	if n > maxUploadsLimit {
		return maxUploadsLimit
	}
	return n
}
