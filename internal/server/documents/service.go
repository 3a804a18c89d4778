// Package documents implements the provisioning workflow: one uploaded file
// becomes an ir.attachment and a documents.document linked to the fixed
// contact, inside a single Odoo session.
package documents

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/docportal/internal/common"
	"github.com/dmitrijs2005/docportal/internal/logging"
	"github.com/dmitrijs2005/docportal/internal/server/journal"
	"github.com/dmitrijs2005/docportal/internal/server/odoo"
	"github.com/dmitrijs2005/docportal/internal/shared"
	"github.com/google/uuid"
)

// SuccessMessage is returned with every provisioned upload.
const SuccessMessage = "document created in Odoo Documents and assigned to contact ID=3"

// Outcome labels used in metrics.
const (
	OutcomeSucceeded    = "succeeded"
	OutcomeInvalid      = "invalid"
	OutcomeUnauthorized = "unauthorized"
	OutcomeFailed       = "failed"
	OutcomeOrphaned     = "orphaned"
	OutcomeCompensated  = "compensated"
)

// SessionRunner is satisfied by *odoo.Client.
type SessionRunner interface {
	WithSession(ctx context.Context, fn func(ctx context.Context, s *odoo.Session) error) error
}

// Archiver stores a copy of a provisioned file and returns its key.
type Archiver interface {
	Store(ctx context.Context, id uuid.UUID, fileName, contentType string, data []byte, at time.Time) (string, error)
}

type Recorder interface {
	ObserveUpload(outcome string, d time.Duration)
}

type UploadRequest struct {
	FileName   string `json:"fileName"`
	Base64Data string `json:"base64Data"`
	MimeType   string `json:"mimetype"`
}

type UploadResult struct {
	ID           uuid.UUID
	AttachmentID int64
	DocumentID   int64
	FolderID     int64
}

// Options tune the workflow.
type Options struct {
	FolderID          int64
	CompensateOrphans bool
}

type Service struct {
	odoo     SessionRunner
	opts     Options
	journal  journal.Repository
	archive  Archiver
	recorder Recorder
	logger   logging.Logger
	now      func() time.Time
}

// NewService wires the workflow. journal, archive and recorder are optional.
func NewService(o SessionRunner, opts Options, j journal.Repository, a Archiver, r Recorder, l logging.Logger) *Service {
	if opts.FolderID <= 0 {
		opts.FolderID = common.DefaultFolderID
	}
	if l == nil {
		l = logging.Nop{}
	}
	return &Service{
		odoo:     o,
		opts:     opts,
		journal:  j,
		archive:  a,
		recorder: r,
		logger:   l.With("module", "documents"),
		now:      time.Now,
	}
}

// Upload runs the provisioning workflow. Steps are sequential and the first
// failure ends the run:
//
//  1. validate fileName and base64Data (*ValidationError, no remote calls)
//  2. authenticate (*odoo.AuthError)
//  3. create the attachment (*CreateError, no document is created)
//  4. create the document (*CreateError, the attachment may be unlinked)
func (s *Service) Upload(ctx context.Context, req UploadRequest, requestID string) (*UploadResult, error) {
	start := s.now()

	payload, data, err := validate(req)
	if err != nil {
		s.observe(OutcomeInvalid, start)
		return nil, err
	}

	mime := strings.TrimSpace(req.MimeType)
	if mime == "" {
		mime = common.DefaultMimeType
	}

	rec := &journal.Record{
		ID:        uuid.New(),
		RequestID: requestID,
		FileName:  req.FileName,
		MimeType:  mime,
		Size:      int64(len(data)),
		FolderID:  s.opts.FolderID,
		CreatedAt: start.UTC(),
	}
	log := s.logger.With("upload_id", rec.ID.String(), "request_id", requestID)

	err = s.odoo.WithSession(ctx, func(ctx context.Context, sess *odoo.Session) error {
		attachmentID, err := sess.CreateAttachment(ctx, odoo.AttachmentValues{
			Name:     req.FileName,
			Datas:    payload,
			MimeType: mime,
			ResModel: common.PartnerModel,
			ResID:    common.ContactID,
		})
		if err != nil {
			return &CreateError{Model: common.AttachmentModel, Err: err}
		}
		rec.AttachmentID = attachmentID

		documentID, err := sess.CreateDocument(ctx, odoo.DocumentValues{
			Name:         req.FileName,
			FolderID:     s.opts.FolderID,
			AttachmentID: attachmentID,
			ResModel:     common.PartnerModel,
			ResID:        common.ContactID,
			PartnerID:    common.ContactID,
		})
		if err != nil {
			s.compensate(ctx, log, sess, rec)
			return &CreateError{Model: common.DocumentModel, Err: err}
		}
		rec.DocumentID = documentID
		return nil
	})

	if err != nil {
		outcome := OutcomeFailed
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			outcome = OutcomeUnauthorized
			rec.Status = journal.StatusFailed
		case rec.Status == journal.StatusOrphaned:
			outcome = OutcomeOrphaned
		case rec.Status == journal.StatusCompensated:
			outcome = OutcomeCompensated
		default:
			rec.Status = journal.StatusFailed
		}
		rec.Error = joinErr(rec.Error, err.Error())

		log.Error(ctx, "upload failed", "file_name", req.FileName, "status", rec.Status, "error", err)
		s.record(ctx, log, rec)
		s.observe(outcome, start)
		return nil, err
	}

	rec.Status = journal.StatusSucceeded
	s.store(ctx, log, rec, data)
	s.record(ctx, log, rec)
	s.observe(OutcomeSucceeded, start)

	log.Info(ctx, "upload provisioned",
		"file_name", req.FileName,
		"attachment_id", rec.AttachmentID,
		"document_id", rec.DocumentID,
		"folder_id", rec.FolderID,
	)

	return &UploadResult{
		ID:           rec.ID,
		AttachmentID: rec.AttachmentID,
		DocumentID:   rec.DocumentID,
		FolderID:     rec.FolderID,
	}, nil
}

// validate returns the base64 payload to send (prefix stripped, standard
// padding) and the decoded bytes.
func validate(req UploadRequest) (string, []byte, error) {
	if req.FileName == "" || req.Base64Data == "" {
		return "", nil, &ValidationError{Message: MsgMissingParameters}
	}

	data, err := shared.DecodeBase64(req.Base64Data)
	if err != nil {
		return "", nil, &ValidationError{Message: MsgInvalidBase64}
	}
	if len(data) == 0 {
		return "", nil, &ValidationError{Message: MsgMissingParameters}
	}

	return base64.StdEncoding.EncodeToString(data), data, nil
}

func (s *Service) compensate(ctx context.Context, log logging.Logger, sess *odoo.Session, rec *journal.Record) {
	rec.Status = journal.StatusOrphaned
	if !s.opts.CompensateOrphans {
		log.Warn(ctx, "attachment left without document", "attachment_id", rec.AttachmentID)
		return
	}

	if err := sess.Unlink(ctx, common.AttachmentModel, rec.AttachmentID); err != nil {
		log.Error(ctx, "failed to unlink orphaned attachment", "attachment_id", rec.AttachmentID, "error", err)
		rec.Error = fmt.Sprintf("unlink attachment %d: %v", rec.AttachmentID, err)
		return
	}

	log.Info(ctx, "orphaned attachment unlinked", "attachment_id", rec.AttachmentID)
	rec.Status = journal.StatusCompensated
}

func (s *Service) store(ctx context.Context, log logging.Logger, rec *journal.Record, data []byte) {
	if s.archive == nil {
		return
	}
	key, err := s.archive.Store(ctx, rec.ID, rec.FileName, rec.MimeType, data, rec.CreatedAt)
	if err != nil {
		log.Warn(ctx, "archive failed", "error", err)
		return
	}
	rec.ArchiveKey = key
}

func (s *Service) record(ctx context.Context, log logging.Logger, rec *journal.Record) {
	if s.journal == nil {
		return
	}
	// The run already happened in Odoo, so it is recorded even if the
	// client went away.
	if err := s.journal.Save(context.WithoutCancel(ctx), rec); err != nil {
		log.Warn(ctx, "journal save failed", "error", err)
	}
}

func (s *Service) observe(outcome string, start time.Time) {
	if s.recorder != nil {
		s.recorder.ObserveUpload(outcome, s.now().Sub(start))
	}
}

func joinErr(a, b string) string {
	if a == "" {
		return b
	}
	return b + "; " + a
}
