package images

import (
	"bytes"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
)

// pngBytes is a minimal buffer carrying the PNG magic number, enough for
// content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

func buildMultipart(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range files {
		part, err := writer.CreateFormFile("file", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"]
}

func TestStagePendingAcceptsPNG(t *testing.T) {
	headers := buildMultipart(t, map[string][]byte{"photo.png": pngBytes})

	pending, err := StagePending(headers)
	if err != nil {
		t.Fatalf("StagePending: %v", err)
	}
	if pending.MimeType != "image/png" {
		t.Fatalf("MimeType = %q, want image/png", pending.MimeType)
	}
	if !bytes.Equal(pending.Bytes, pngBytes) {
		t.Fatal("staged bytes differ from input")
	}
	if !strings.HasPrefix(pending.Preview, "data:image/png;base64,") {
		t.Fatalf("preview is not a data URL: %q", pending.Preview)
	}
}

func TestStagePendingKeepsFirstOfMany(t *testing.T) {
	headers := buildMultipart(t, map[string][]byte{"first.png": pngBytes})
	headers = append(headers, buildMultipart(t, map[string][]byte{"second.png": pngBytes})...)

	pending, err := StagePending(headers)
	if err != nil {
		t.Fatalf("StagePending: %v", err)
	}
	if pending.FileName != "first.png" {
		t.Fatalf("FileName = %q, want first.png", pending.FileName)
	}
}

func TestStagePendingRejectsNonImage(t *testing.T) {
	headers := buildMultipart(t, map[string][]byte{"notes.txt": []byte("plain text, not an image")})

	if _, err := StagePending(headers); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestStagePendingRejectsSpoofedExtension(t *testing.T) {
	headers := buildMultipart(t, map[string][]byte{"fake.png": []byte("<html><body>nope</body></html>")})

	if _, err := StagePending(headers); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for sniffed html, got %v", err)
	}
}

func TestStagePendingRejectsEmptyInput(t *testing.T) {
	if _, err := StagePending(nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	headers := buildMultipart(t, map[string][]byte{"photo.png": pngBytes})
	pending, err := StagePending(headers)
	if err != nil {
		t.Fatalf("StagePending: %v", err)
	}

	pending.Clear()
	if pending.Bytes != nil || pending.Preview != "" {
		t.Fatal("clear left staged data behind")
	}
	pending.Clear()
	if pending.Bytes != nil || pending.Preview != "" {
		t.Fatal("second clear left staged data behind")
	}
}
