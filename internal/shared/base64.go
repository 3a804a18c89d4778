package shared

import (
	"encoding/base64"
	"strings"
)

// StripDataURIPrefix removes a leading "data:<type>;base64," header, as
// produced by browsers' FileReader.readAsDataURL. Anything without a comma
// after "data:" is returned unchanged.
//
//	StripDataURIPrefix("data:application/pdf;base64,JVBERi0=") // "JVBERi0="
func StripDataURIPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	_, payload, ok := strings.Cut(s, ",")
	if !ok {
		return s
	}
	return payload
}

// DecodeBase64 decodes standard-alphabet base64, padded or not, after
// stripping any data-URI prefix and surrounding whitespace. Line breaks
// inside the payload are tolerated.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(StripDataURIPrefix(s))
	if strings.ContainsAny(s, "\r\n") {
		s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
		return raw, nil
	}
	return nil, err
}
