// Package directory serves the read-only lookups: contacts and document
// folders. Each call runs in its own Odoo session.
package directory

import (
	"context"

	"github.com/dmitrijs2005/docportal/internal/server/odoo"
)

// SessionRunner is satisfied by *odoo.Client.
type SessionRunner interface {
	WithSession(ctx context.Context, fn func(ctx context.Context, s *odoo.Session) error) error
}

type Service struct {
	odoo SessionRunner
}

func NewService(o SessionRunner) *Service {
	return &Service{odoo: o}
}

// ListContacts returns every partner in Odoo order.
func (s *Service) ListContacts(ctx context.Context) ([]odoo.Partner, error) {
	var partners []odoo.Partner
	err := s.odoo.WithSession(ctx, func(ctx context.Context, sess *odoo.Session) (err error) {
		partners, err = sess.SearchReadPartners(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return partners, nil
}

// ListFolders returns every document folder as a flat list.
func (s *Service) ListFolders(ctx context.Context) ([]odoo.Folder, error) {
	var folders []odoo.Folder
	err := s.odoo.WithSession(ctx, func(ctx context.Context, sess *odoo.Session) (err error) {
		folders, err = sess.SearchReadFolders(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return folders, nil
}
