package odoo

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

// Caller is the subset of *xmlrpc.Client used by sessions.
type Caller interface {
	Call(serviceMethod string, args any, reply any) error
	Close() error
}

// Dialer builds a Caller for one endpoint. ctx bounds every call made
// through the returned Caller.
type Dialer func(ctx context.Context, endpoint string) (Caller, error)

// HTTPDialer returns a Dialer over net/http. A positive timeout limits each
// round trip. A nil base means http.DefaultTransport.
func HTTPDialer(timeout time.Duration, base http.RoundTripper) Dialer {
	if base == nil {
		base = http.DefaultTransport
	}
	return func(ctx context.Context, endpoint string) (Caller, error) {
		c, err := xmlrpc.NewClient(endpoint, &contextTransport{ctx: ctx, timeout: timeout, base: base})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// contextTransport attaches a bound context to requests issued by the
// xmlrpc client, whose Call has no context parameter.
type contextTransport struct {
	ctx     context.Context
	timeout time.Duration
	base    http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, cancel := t.ctx, context.CancelFunc(func() {})
	if t.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
	}

	resp, err := t.base.RoundTrip(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
