package directory

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/docportal/internal/common"
	"github.com/dmitrijs2005/docportal/internal/server/odoo"
	"github.com/dmitrijs2005/docportal/internal/server/odoo/odootest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, *odootest.Server) {
	t.Helper()
	srv := odootest.New(t)
	c := odoo.NewClient(odoo.Config{Host: srv.URL(), DB: "db", User: "u", Password: "p"},
		odoo.HTTPDialer(5*time.Second, nil), nil, nil)
	return NewService(c), srv
}

func TestListContacts(t *testing.T) {
	svc, srv := newService(t)
	srv.Reply(common.PartnerModel, "search_read", []any{
		map[string]any{"id": 1, "name": "Zed", "email": false, "phone": false},
		map[string]any{"id": 3, "name": "Acme", "email": "a@acme.test", "phone": "1"},
	})

	got, err := svc.ListContacts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []odoo.Partner{
		{ID: 1, Name: "Zed"},
		{ID: 3, Name: "Acme", Email: "a@acme.test", Phone: "1"},
	}, got, "order is preserved")
}

func TestListContacts_AuthFailure(t *testing.T) {
	svc, srv := newService(t)
	srv.SetUID(false)

	_, err := svc.ListContacts(context.Background())
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Empty(t, srv.CallsTo(common.PartnerModel, "search_read"))
}

func TestListFolders(t *testing.T) {
	svc, srv := newService(t)
	srv.Reply(common.FolderModel, "search_read", []any{
		map[string]any{"id": 1, "name": "Inbox", "parent_id": false},
		map[string]any{"id": 2, "name": "HR", "parent_id": []any{1, "Inbox"}},
	})

	got, err := svc.ListFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []odoo.Folder{
		{ID: 1, Name: "Inbox"},
		{ID: 2, Name: "HR", ParentID: 1},
	}, got)
}

func TestListFolders_RemoteFailure(t *testing.T) {
	svc, srv := newService(t)
	srv.Handle(common.FolderModel, "search_read", func(odootest.Call) (any, error) {
		return nil, odootest.StatusError(500)
	})

	_, err := svc.ListFolders(context.Background())
	assert.ErrorIs(t, err, common.ErrorRemoteCall)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}
