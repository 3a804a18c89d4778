package documents

import (
	"fmt"

	"github.com/dmitrijs2005/docportal/internal/common"
)

// Messages returned to HTTP clients.
const (
	MsgMissingParameters = "missing parameters: fileName or base64Data"
	MsgInvalidBase64     = "base64Data is not valid base64"
)

// ValidationError rejects a request before any remote call is made.
// It matches common.ErrorValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == common.ErrorValidation }

// CreateError reports a create step that failed or returned no id.
// It matches common.ErrorCreate.
type CreateError struct {
	Model string
	Err   error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("create %s: %v", e.Model, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

func (e *CreateError) Is(target error) bool { return target == common.ErrorCreate }
