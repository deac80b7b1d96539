package images

import (
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"pixelup-backend/internal/shared/util"
)

// allowedImageTypes is the sniffed content-type allowlist for uploads.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// PendingUpload holds a staged file between selection and enhancement.
type PendingUpload struct {
	Bytes    []byte
	MimeType string
	FileName string
	Preview  string
}

// StagePending validates and stages an uploaded file. When several files are
// submitted only the first is kept; the rest are silently discarded. The
// content type is sniffed from the bytes, never trusted from the client.
func StagePending(headers []*multipart.FileHeader) (*PendingUpload, error) {
	if len(headers) == 0 {
		return nil, ErrInvalidInput
	}

	header := headers[0]
	fileName, err := util.SanitizeFileName(header.Filename)
	if err != nil {
		return nil, ErrInvalidInput
	}

	file, err := header.Open()
	if err != nil {
		return nil, ErrInvalidInput
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrInvalidInput
	}

	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if !allowedImageTypes[mimeType] {
		return nil, ErrUnsupportedType
	}

	return &PendingUpload{
		Bytes:    data,
		MimeType: mimeType,
		FileName: fileName,
		Preview:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Clear discards the staged bytes and preview. Safe to call repeatedly.
func (p *PendingUpload) Clear() {
	if p == nil {
		return
	}
	p.Bytes = nil
	p.Preview = ""
	p.MimeType = ""
	p.FileName = ""
}
