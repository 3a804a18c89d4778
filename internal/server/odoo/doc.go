// Package odoo talks to an Odoo instance over XML-RPC.
//
// Every operation runs inside a short-lived Session: WithSession builds fresh
// clients for /xmlrpc/2/common and /xmlrpc/2/object, authenticates, runs the
// callback and closes the clients. Nothing is pooled between requests.
package odoo
