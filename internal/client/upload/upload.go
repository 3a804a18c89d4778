// Package upload turns local files into the JSON payload accepted by the
// portal's POST /upload endpoint.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/docportal/internal/shared"
)

// ErrEmptyFile is returned for zero-length input; the portal rejects an
// empty base64Data field anyway.
var ErrEmptyFile = errors.New("file is empty")

// Payload mirrors the upload request body.
type Payload struct {
	FileName   string `json:"fileName"`
	Base64Data string `json:"base64Data"`
	MimeType   string `json:"mimetype,omitempty"`
}

// EncodeFile reads path, sniffs its MIME type from the content and encodes
// it with the standard base64 alphabet. The stored file name is the base
// name of path.
func EncodeFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	return Encode(filepath.Base(path), data), nil
}

// Encode builds a Payload for in-memory content.
func Encode(fileName string, data []byte) *Payload {
	return &Payload{
		FileName:   fileName,
		Base64Data: base64.StdEncoding.EncodeToString(data),
		MimeType:   DetectMimeType(data),
	}
}

// DetectMimeType returns the media type of data without parameters,
// e.g. "text/plain" rather than "text/plain; charset=utf-8".
func DetectMimeType(data []byte) string {
	mt, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return strings.TrimSpace(mt)
}

// FromDataURI converts a browser-style data URI into a Payload. The media
// type in the header, if any, becomes the payload's MIME type.
func FromDataURI(fileName, uri string) *Payload {
	p := &Payload{FileName: fileName, Base64Data: StripDataURIPrefix(uri)}
	if header, _, ok := strings.Cut(uri, ","); ok && strings.HasPrefix(header, "data:") {
		mt := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		if mt, _, _ = strings.Cut(mt, ";"); mt != "" {
			p.MimeType = mt
		}
	}
	return p
}

// StripDataURIPrefix removes a leading "data:<type>;base64," header.
func StripDataURIPrefix(s string) string {
	return shared.StripDataURIPrefix(s)
}
