package images

import (
	"time"

	"github.com/gin-gonic/gin"
)

type enhanceResponse struct {
	ImageID     string `json:"imageId,omitempty"`
	OriginalURL string `json:"originalUrl"`
	EnhancedURL string `json:"enhancedUrl"`
	MimeType    string `json:"mimeType"`
	Fallback    bool   `json:"fallback"`
	Reason      string `json:"reason,omitempty"`
	Strategy    string `json:"strategy"`
}

func toEnhanceResponse(out Outcome) enhanceResponse {
	return enhanceResponse{
		ImageID:     out.ImageID,
		OriginalURL: out.OriginalURL,
		EnhancedURL: out.EnhancedURL,
		MimeType:    out.MimeType,
		Fallback:    out.Fallback,
		Reason:      out.Reason,
		Strategy:    out.Strategy,
	}
}

func toListItem(img UpscaledImage) gin.H {
	return gin.H{
		"imageId":     img.ID,
		"originalUrl": img.OriginalURL,
		"upscaledUrl": img.UpscaledURL,
		"method":      img.Method,
		"strategy":    img.Strategy,
		"fallback":    img.Fallback,
		"createdAt":   img.CreatedAt.UTC().Format(time.RFC3339),
	}
}
