package odoo

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docportal/internal/common"
)

// Session is an authenticated handle valid for the duration of one
// WithSession callback.
type Session struct {
	client *Client
	object Caller
	uid    int64
}

// UID returns the authenticated user id.
func (s *Session) UID() int64 { return s.uid }

// Call runs execute_kw(db, uid, password, model, method, args[, kwargs]) and
// decodes the reply into reply. Failures are *RemoteCallError.
func (s *Session) Call(ctx context.Context, model, method string, args []any, kwargs map[string]any, reply any) error {
	if err := ctx.Err(); err != nil {
		return &RemoteCallError{Model: model, Method: method, Err: err}
	}
	if args == nil {
		args = []any{}
	}

	cfg := s.client.cfg
	params := []any{cfg.DB, s.uid, cfg.Password, model, method, args}
	if kwargs != nil {
		params = append(params, kwargs)
	}

	start := time.Now()
	err := s.object.Call("execute_kw", params, reply)
	s.client.observe(model, method, err)
	if err != nil {
		s.client.logger.Warn(ctx, "odoo call failed", "model", model, "method", method, "error", err)
		return &RemoteCallError{Model: model, Method: method, Err: err}
	}

	s.client.logger.Debug(ctx, "odoo call", "model", model, "method", method, "duration", time.Since(start))
	return nil
}

// SearchReadPartners lists every res.partner with id, name, email and phone.
func (s *Session) SearchReadPartners(ctx context.Context) ([]Partner, error) {
	var reply any
	args := []any{[]any{}, partnerFields, 0, 0, ""}
	if err := s.Call(ctx, common.PartnerModel, "search_read", args, nil, &reply); err != nil {
		return nil, err
	}

	rs, err := rows(reply)
	if err != nil {
		return nil, &RemoteCallError{Model: common.PartnerModel, Method: "search_read", Err: err}
	}
	partners := make([]Partner, 0, len(rs))
	for _, r := range rs {
		partners = append(partners, partnerFromRow(r))
	}
	return partners, nil
}

// SearchReadFolders lists every documents.folder with id, name and parent.
// The fields struct travels inside the positional args, after the empty domain.
func (s *Session) SearchReadFolders(ctx context.Context) ([]Folder, error) {
	var reply any
	args := []any{[]any{}, map[string]any{"fields": folderFields}}
	if err := s.Call(ctx, common.FolderModel, "search_read", args, nil, &reply); err != nil {
		return nil, err
	}

	rs, err := rows(reply)
	if err != nil {
		return nil, &RemoteCallError{Model: common.FolderModel, Method: "search_read", Err: err}
	}
	folders := make([]Folder, 0, len(rs))
	for _, r := range rs {
		folders = append(folders, folderFromRow(r))
	}
	return folders, nil
}

// CreateAttachment creates an ir.attachment and returns its id.
// A reply without a positive id yields ErrNoRecordID.
func (s *Session) CreateAttachment(ctx context.Context, v AttachmentValues) (int64, error) {
	return s.create(ctx, common.AttachmentModel, v.toStruct())
}

// CreateDocument creates a documents.document and returns its id.
func (s *Session) CreateDocument(ctx context.Context, v DocumentValues) (int64, error) {
	return s.create(ctx, common.DocumentModel, v.toStruct())
}

func (s *Session) create(ctx context.Context, model string, values map[string]any) (int64, error) {
	var reply any
	if err := s.Call(ctx, model, "create", []any{values}, nil, &reply); err != nil {
		return 0, err
	}
	return recordID(reply)
}

// Unlink deletes records of model.
func (s *Session) Unlink(ctx context.Context, model string, ids ...int64) error {
	list := make([]any, 0, len(ids))
	for _, id := range ids {
		list = append(list, id)
	}
	var reply any
	return s.Call(ctx, model, "unlink", []any{list}, nil, &reply)
}
