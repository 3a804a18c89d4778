package odoo

import (
	"fmt"

	"github.com/dmitrijs2005/docportal/internal/common"
)

// Partner is a res.partner row. Odoo false becomes "".
type Partner struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Folder is a documents.folder row. ParentID is 0 for top-level folders.
type Folder struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parentId"`
}

// AttachmentValues are the fields of a new ir.attachment.
// Datas is the base64 payload as sent by the portal.
type AttachmentValues struct {
	Name     string
	Datas    string
	MimeType string
	ResModel string
	ResID    int64
}

func (v AttachmentValues) toStruct() map[string]any {
	return map[string]any{
		"name":      v.Name,
		"datas":     v.Datas,
		"mimetype":  v.MimeType,
		"res_model": v.ResModel,
		"res_id":    v.ResID,
	}
}

// DocumentValues are the fields of a new documents.document.
type DocumentValues struct {
	Name         string
	FolderID     int64
	AttachmentID int64
	ResModel     string
	ResID        int64
	PartnerID    int64
}

func (v DocumentValues) toStruct() map[string]any {
	return map[string]any{
		"name":          v.Name,
		"folder_id":     v.FolderID,
		"attachment_id": v.AttachmentID,
		"res_model":     v.ResModel,
		"res_id":        v.ResID,
		"partner_id":    v.PartnerID,
	}
}

// VersionInfo is the subset of common.version used for readiness checks.
type VersionInfo struct {
	ServerVersion   string
	ProtocolVersion int64
}

var partnerFields = []any{"id", "name", "email", "phone"}
var folderFields = []any{"id", "name", "parent_id"}

// asInt accepts the integer shapes an XML-RPC decoder produces.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

// asString maps Odoo's false (and anything non-string) to "".
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// asMany2oneID turns [id, display_name] or false into an id, 0 meaning none.
func asMany2oneID(v any) int64 {
	if id, ok := asInt(v); ok {
		return id
	}
	if pair, ok := v.([]any); ok && len(pair) > 0 {
		if id, ok := asInt(pair[0]); ok {
			return id
		}
	}
	return 0
}

// recordID validates a create reply. Odoo answers with a bare id or, for
// batched creates, a list holding one id.
func recordID(reply any) (int64, error) {
	if list, ok := reply.([]any); ok {
		if len(list) != 1 {
			return 0, ErrNoRecordID
		}
		reply = list[0]
	}
	id, ok := asInt(reply)
	if !ok || id <= 0 {
		return 0, ErrNoRecordID
	}
	return id, nil
}

func rows(reply any) ([]map[string]any, error) {
	if reply == nil {
		return nil, nil
	}
	list, ok := reply.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected search_read reply %T", common.ErrorRemoteCall, reply)
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected search_read row %T", common.ErrorRemoteCall, item)
		}
		out = append(out, row)
	}
	return out, nil
}

func partnerFromRow(row map[string]any) Partner {
	id, _ := asInt(row["id"])
	return Partner{
		ID:    id,
		Name:  asString(row["name"]),
		Email: asString(row["email"]),
		Phone: asString(row["phone"]),
	}
}

func folderFromRow(row map[string]any) Folder {
	id, _ := asInt(row["id"])
	return Folder{
		ID:       id,
		Name:     asString(row["name"]),
		ParentID: asMany2oneID(row["parent_id"]),
	}
}
