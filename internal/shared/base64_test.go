package shared

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripDataURIPrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"pdf data uri", "data:application/pdf;base64,JVBERi0=", "JVBERi0="},
		{"no type", "data:;base64,AAAA", "AAAA"},
		{"plain base64", "SGVsbG8=", "SGVsbG8="},
		{"data without comma", "data:broken", "data:broken"},
		{"empty", "", ""},
		{"prefix not at start", "xdata:a,b", "xdata:a,b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDataURIPrefix(tt.in))
		})
	}
}

func TestDecodeBase64(t *testing.T) {
	payload := []byte("hello portal\x00\xff")
	std := base64.StdEncoding.EncodeToString(payload)
	raw := base64.RawStdEncoding.EncodeToString(payload)

	for _, in := range []string{
		std,
		raw,
		"data:application/octet-stream;base64," + std,
		"  " + std + "\n",
		std[:8] + "\r\n" + std[8:],
	} {
		got, err := DecodeBase64(in)
		require.NoError(t, err, in)
		assert.Equal(t, payload, got)
	}

	_, err := DecodeBase64("not base64 at all!")
	assert.Error(t, err)
}

func TestWipeByteArray(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	assert.Equal(t, make([]byte, 6), b)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
