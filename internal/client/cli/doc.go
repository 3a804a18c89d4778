// Package cli implements the portal command-line client.
//
// Commands:
//
//	portal login [-u user]         check credentials, store the session token
//	portal logout                  forget the stored token
//	portal upload <file>...        provision each file as an Odoo document
//	portal contacts                list res.partner records
//	portal folders                 list documents.folder records
//	portal uploads [-n N]          show the server's upload journal
//
// Global flags --server, --timeout and --config (-c) override the
// PORTAL_URL / PORTAL_TIMEOUT environment and the JSON config file.
package cli
