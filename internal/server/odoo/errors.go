package odoo

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docportal/internal/common"
)

// ErrNoRecordID is returned by create calls whose reply carries no usable id.
var ErrNoRecordID = fmt.Errorf("%w: reply carries no record id", common.ErrorCreate)

// AuthError reports a failed authenticate call: a falsy uid or an
// unreachable server. It matches common.ErrorUnauthorized.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "odoo authentication failed"
	}
	return "odoo authentication failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == common.ErrorUnauthorized }

// RemoteCallError wraps a transport failure or an XML-RPC fault of
// execute_kw. It matches common.ErrorRemoteCall.
type RemoteCallError struct {
	Model  string
	Method string
	Err    error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("odoo %s.%s: %v", e.Model, e.Method, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

func (e *RemoteCallError) Is(target error) bool { return target == common.ErrorRemoteCall }

var errFalsyUID = errors.New("server returned no user id")
