package httpapi

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/docportal/internal/common"
	"github.com/dmitrijs2005/docportal/internal/server/config"
	"github.com/dmitrijs2005/docportal/internal/server/directory"
	"github.com/dmitrijs2005/docportal/internal/server/documents"
	"github.com/dmitrijs2005/docportal/internal/server/journal"
	"github.com/dmitrijs2005/docportal/internal/server/odoo"
	"github.com/dmitrijs2005/docportal/internal/server/odoo/odootest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack struct {
	odoo    *odootest.Server
	journal *journal.MemoryRepository
	handler http.Handler
}

func newStack(t *testing.T, folderID string) *stack {
	t.Helper()
	srv := odootest.New(t)
	client := odoo.NewClient(odoo.Config{Host: srv.URL(), DB: "db", User: "bot", Password: "pw"},
		odoo.HTTPDialer(5*time.Second, nil), nil, nil)
	j := journal.NewMemoryRepository(10)
	docs := documents.NewService(client, documents.Options{
		FolderID:          config.ParseFolderID(folderID),
		CompensateOrphans: true,
	}, j, nil, nil, nil)

	return &stack{
		odoo:    srv,
		journal: j,
		handler: newHandler(Deps{
			Directory: directory.NewService(client),
			Uploader:  docs,
			Journal:   j,
		}, Options{}),
	}
}

func TestEndToEnd_UploadWithDefaultFolder(t *testing.T) {
	for _, folder := range []string{"", "abc"} {
		s := newStack(t, folder)
		s.odoo.Reply(common.AttachmentModel, "create", 42)
		s.odoo.Reply(common.DocumentModel, "create", 99)

		rec := do(t, s.handler, http.MethodPost, "/upload", `{"fileName":"a.txt","base64Data":"aGVsbG8="}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"message":"`+documents.SuccessMessage+`","attachmentId":42,"documentId":99,"folderId":1}`,
			rec.Body.String())

		doc := s.odoo.CallsTo(common.DocumentModel, "create")
		require.Len(t, doc, 1)
		assert.Equal(t, "1", doc[0].Member("folder_id"))
	}
}

func TestEndToEnd_Base64RoundTrip(t *testing.T) {
	s := newStack(t, "5")
	s.odoo.Reply(common.AttachmentModel, "create", 1)
	s.odoo.Reply(common.DocumentModel, "create", 2)

	original := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff, 0x10, 0x80, '\n'}
	encoded := base64.StdEncoding.EncodeToString(original)

	rec := do(t, s.handler, http.MethodPost, "/upload",
		`{"fileName":"bin.pdf","base64Data":"data:application/pdf;base64,`+encoded+`","mimetype":"application/pdf"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	att := s.odoo.CallsTo(common.AttachmentModel, "create")
	require.Len(t, att, 1)
	decoded, err := base64.StdEncoding.DecodeString(att[0].Member("datas"))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEndToEnd_MissingFieldsMakeNoRemoteCalls(t *testing.T) {
	s := newStack(t, "")

	rec := do(t, s.handler, http.MethodPost, "/upload", `{"fileName":"a.txt"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, documents.MsgMissingParameters, decode(t, rec)["error"])
	assert.Empty(t, s.odoo.Calls())
}

func TestEndToEnd_FalsyUIDMakesNoCreateCalls(t *testing.T) {
	s := newStack(t, "")
	s.odoo.SetUID(false)

	rec := do(t, s.handler, http.MethodPost, "/upload", `{"fileName":"a.txt","base64Data":"aGVsbG8="}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.odoo.CallsTo(common.AttachmentModel, "create"))
	assert.Empty(t, s.odoo.CallsTo(common.DocumentModel, "create"))
}

func TestEndToEnd_FailedAttachmentSkipsDocument(t *testing.T) {
	s := newStack(t, "")
	s.odoo.Reply(common.AttachmentModel, "create", false)

	rec := do(t, s.handler, http.MethodPost, "/upload", `{"fileName":"a.txt","base64Data":"aGVsbG8="}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	m := decode(t, rec)
	assert.Equal(t, "failed to create ir.attachment", m["error"])
	assert.NotEmpty(t, m["details"])
	assert.Empty(t, s.odoo.CallsTo(common.DocumentModel, "create"))
}

func TestEndToEnd_JournalListsUploads(t *testing.T) {
	s := newStack(t, "")
	s.odoo.Reply(common.AttachmentModel, "create", 42)
	s.odoo.Reply(common.DocumentModel, "create", 99)

	rec := do(t, s.handler, http.MethodPost, "/upload", `{"fileName":"a.txt","base64Data":"aGVsbG8="}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s.handler, http.MethodGet, "/uploads?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	uploads := decode(t, rec)["uploads"].([]any)
	require.Len(t, uploads, 1)
	first := uploads[0].(map[string]any)
	assert.Equal(t, "succeeded", first["status"])
	assert.Equal(t, float64(99), first["documentId"])
}

func TestEndToEnd_Contacts(t *testing.T) {
	s := newStack(t, "")
	s.odoo.Reply(common.PartnerModel, "search_read", []any{
		map[string]any{"id": 3, "name": "Acme", "email": false, "phone": false},
	})

	rec := do(t, s.handler, http.MethodGet, "/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"partners":[{"id":3,"name":"Acme","email":"","phone":""}]}`, rec.Body.String())
}
