package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pixelup-backend/internal/bootstrap"
	"pixelup-backend/internal/shared/auth"
	"pixelup-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		PublicBaseURL:   "http://localhost:8080",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func TestHealthIsPublic(t *testing.T) {
	app := buildTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestImagesRequireAuth(t *testing.T) {
	app := buildTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/images", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeWithSignedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := buildTestApp(t)

	token, err := auth.SignJWT(auth.Claims{Sub: "google:123", Email: "a@b.test", Name: "A"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.UserID != "google:123" || body.Email != "a@b.test" {
		t.Fatalf("unexpected identity: %+v", body)
	}
}

func TestObjectDownloadIsPublic(t *testing.T) {
	app := buildTestApp(t)

	content := []byte("png-bytes")
	if _, err := app.Store.Put(context.Background(), "enhanced-uploads/u/1_enhanced.png", "image/png", bytes.NewReader(content)); err != nil {
		t.Fatalf("store put: %v", err)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/o/enhanced-uploads/u/1_enhanced.png", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("Content-Type = %q, want image/png", got)
	}
	data, _ := io.ReadAll(rec.Body)
	if !bytes.Equal(data, content) {
		t.Fatalf("body = %q, want %q", data, content)
	}
}

func TestObjectDownloadMissing(t *testing.T) {
	app := buildTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/o/original-uploads/u/none.png", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	app := buildTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("enhancement_started_total")) {
		t.Fatal("metrics output missing enhancement counters")
	}
}
