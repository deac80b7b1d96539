package server

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"pixelup-backend/internal/shared/server/respond"
	"pixelup-backend/internal/shared/storage/object"
)

// registerObjectRoutes serves stored objects on the public URL shape that
// PublicURL produces. Downloads carry no auth so that image tags can load
// them directly.
func registerObjectRoutes(r *gin.Engine, store object.ObjectStore) {
	r.GET("/o/*key", func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" {
			respond.Error(c, http.StatusNotFound, "not_found", "object not found", nil)
			return
		}

		reader, err := store.Open(c.Request.Context(), key)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "not_found", "object not found", nil)
			return
		}
		defer reader.Close()

		contentType := mime.TypeByExtension(path.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Type", contentType)
		c.Header("Cache-Control", "private, max-age=3600")
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, reader)
	})
}
