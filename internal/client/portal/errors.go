package portal

import (
	"net/http"

	"github.com/dmitrijs2005/docportal/internal/common"
)

// APIError is a non-2xx reply from the portal.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, common.ErrorUnauthorized) match 401 replies.
func (e *APIError) Is(target error) bool {
	switch target {
	case common.ErrorUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrorMethodNotAllowed:
		return e.Status == http.StatusMethodNotAllowed
	case common.ErrorValidation:
		return e.Status == http.StatusBadRequest
	}
	return false
}
