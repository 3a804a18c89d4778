package upload

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docportal/internal/shared"
)

var pdfHeader = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

func TestEncodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.pdf")
	require.NoError(t, os.WriteFile(path, pdfHeader, 0o600))

	p, err := EncodeFile(path)
	require.NoError(t, err)

	assert.Equal(t, "invoice.pdf", p.FileName)
	assert.Equal(t, "application/pdf", p.MimeType)

	decoded, err := base64.StdEncoding.DecodeString(p.Base64Data)
	require.NoError(t, err)
	assert.Equal(t, pdfHeader, decoded)
}

func TestEncodeFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := EncodeFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = EncodeFile(empty)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"pdf", pdfHeader, "application/pdf"},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), "image/png"},
		{"text drops charset", []byte("hello, world\n"), "text/plain"},
		{"unknown binary", []byte{0x00, 0x01, 0x02, 0xff}, "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMimeType(tt.data))
		})
	}
}

func TestFromDataURI(t *testing.T) {
	p := FromDataURI("a.pdf", "data:application/pdf;base64,JVBERi0=")
	assert.Equal(t, "JVBERi0=", p.Base64Data)
	assert.Equal(t, "application/pdf", p.MimeType)

	p = FromDataURI("a.bin", "QUJD")
	assert.Equal(t, "QUJD", p.Base64Data)
	assert.Empty(t, p.MimeType)
}

func TestRoundTrip(t *testing.T) {
	data := []byte("quarterly report\x00\x01\x02")
	p := Encode("r.bin", data)

	got, err := shared.DecodeBase64("data:" + p.MimeType + ";base64," + p.Base64Data)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
