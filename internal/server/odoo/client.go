package odoo

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/docportal/internal/logging"
)

const (
	commonPath = "/xmlrpc/2/common"
	objectPath = "/xmlrpc/2/object"
)

// Config holds the connection settings of one Odoo database.
type Config struct {
	Host     string
	DB       string
	User     string
	Password string
}

// Observer receives the outcome of every remote call. err is nil on success.
type Observer interface {
	ObserveRemoteCall(model, method string, err error)
}

type Client struct {
	cfg      Config
	dial     Dialer
	observer Observer
	logger   logging.Logger
}

// NewClient returns a Client. A nil dial uses HTTPDialer without a timeout;
// observer and l may be nil.
func NewClient(cfg Config, dial Dialer, observer Observer, l logging.Logger) *Client {
	if dial == nil {
		dial = HTTPDialer(0, nil)
	}
	if l == nil {
		l = logging.Nop{}
	}
	return &Client{
		cfg:      cfg,
		dial:     dial,
		observer: observer,
		logger:   l.With("module", "odoo"),
	}
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.Host, "/") + path
}

func (c *Client) observe(model, method string, err error) {
	if c.observer != nil {
		c.observer.ObserveRemoteCall(model, method, err)
	}
}

// WithSession authenticates and runs fn with a fresh session. Clients are
// closed when fn returns. Authentication failures are *AuthError and fn is
// not called.
func (c *Client) WithSession(ctx context.Context, fn func(ctx context.Context, s *Session) error) error {
	commonRPC, err := c.dial(ctx, c.endpoint(commonPath))
	if err != nil {
		return &AuthError{Err: err}
	}
	defer commonRPC.Close()

	uid, err := c.authenticate(ctx, commonRPC)
	if err != nil {
		return err
	}

	objectRPC, err := c.dial(ctx, c.endpoint(objectPath))
	if err != nil {
		return &RemoteCallError{Model: "object", Method: "dial", Err: err}
	}
	defer objectRPC.Close()

	return fn(ctx, &Session{
		client: c,
		object: objectRPC,
		uid:    uid,
	})
}

func (c *Client) authenticate(ctx context.Context, rpc Caller) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &AuthError{Err: err}
	}

	start := time.Now()
	var reply any
	err := rpc.Call("authenticate", []any{c.cfg.DB, c.cfg.User, c.cfg.Password, map[string]any{}}, &reply)
	c.observe("common", "authenticate", err)
	if err != nil {
		c.logger.Warn(ctx, "odoo authenticate failed", "error", err, "duration", time.Since(start))
		return 0, &AuthError{Err: err}
	}

	uid, ok := asInt(reply)
	if !ok || uid <= 0 {
		c.logger.Warn(ctx, "odoo rejected credentials", "db", c.cfg.DB, "user", c.cfg.User)
		return 0, &AuthError{Err: errFalsyUID}
	}

	c.logger.Debug(ctx, "odoo authenticated", "uid", uid, "duration", time.Since(start))
	return uid, nil
}

// Version calls common.version without authenticating.
func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	rpc, err := c.dial(ctx, c.endpoint(commonPath))
	if err != nil {
		return VersionInfo{}, &RemoteCallError{Model: "common", Method: "version", Err: err}
	}
	defer rpc.Close()

	var reply any
	err = rpc.Call("version", nil, &reply)
	c.observe("common", "version", err)
	if err != nil {
		return VersionInfo{}, &RemoteCallError{Model: "common", Method: "version", Err: err}
	}

	info := VersionInfo{}
	if m, ok := reply.(map[string]any); ok {
		info.ServerVersion = asString(m["server_version"])
		info.ProtocolVersion, _ = asInt(m["protocol_version"])
	}
	return info, nil
}
