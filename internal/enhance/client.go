package enhance

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	// MethodRealESRGAN is the fixed method selector sent to the backend.
	MethodRealESRGAN = "realesrgan"

	defaultStrategy = "realesrgan"
	defaultMimeType = "image/png"
)

// Result is the outcome of a single enhancement call. It is transient: the
// caller uploads the bytes and keeps only the resulting URLs.
type Result struct {
	Bytes    []byte
	MimeType string
	Fallback bool
	Reason   string
	Strategy string
}

// Client talks to the external image-enhancement backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Client for the given backend base URL. No global timeout
// is set: the enhancement call can legitimately run long, and the health
// probe carries its own deadline.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Healthy reports whether the backend answers its health endpoint with
// status "ok" within the given timeout. Any error, non-2xx status, timeout
// or unexpected body means unavailable.
func (c *Client) Healthy(ctx context.Context, timeout time.Duration) bool {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}

	var parsed healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false
	}
	return parsed.Status == "ok"
}

type processResponse struct {
	EnhancedImageBase64 string `json:"enhanced_image_base64"`
	MimeType            string `json:"mime_type"`
	Fallback            bool   `json:"fallback"`
	Reason              string `json:"reason"`
	Strategy            string `json:"strategy"`
}

// Process submits the file as a multipart POST and decodes the enhanced
// image from the response.
func (c *Client) Process(ctx context.Context, fileName string, r io.Reader) (Result, error) {
	endpoint := c.baseURL + "/process"

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return Result{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return Result{}, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.WriteField("method", MethodRealESRGAN); err != nil {
		return Result{}, fmt.Errorf("write method field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Result{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, &UnreachableError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, readErr := io.ReadAll(resp.Body)
		detail := strings.TrimSpace(string(raw))
		if readErr != nil || detail == "" {
			detail = "no error body"
		}
		return Result{}, &StatusError{StatusCode: resp.StatusCode, Body: detail}
	}

	var parsed processResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("backend response parse: %w", err)
	}
	if parsed.EnhancedImageBase64 == "" {
		return Result{}, ErrMissingImage
	}

	decoded, err := base64.StdEncoding.DecodeString(parsed.EnhancedImageBase64)
	if err != nil {
		return Result{}, fmt.Errorf("decode enhanced image: %w", err)
	}

	mimeType := parsed.MimeType
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	strategy := parsed.Strategy
	if strategy == "" {
		strategy = defaultStrategy
	}

	return Result{
		Bytes:    decoded,
		MimeType: mimeType,
		Fallback: parsed.Fallback,
		Reason:   parsed.Reason,
		Strategy: strategy,
	}, nil
}
