package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestStartRedirectsToGoogle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("client-id", "client-secret", "http://api.test/api/v1/auth/google/callback", "http://ui.test/")

	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "accounts.google.com") {
		t.Fatalf("unexpected redirect target: %s", location)
	}
	if !strings.Contains(location, "state=") {
		t.Fatalf("redirect missing state: %s", location)
	}
}

func TestStartFailsWhenUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("", "", "", "http://ui.test/")

	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("client-id", "client-secret", "http://api.test/cb", "http://ui.test/")

	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=forged&code=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogoutAcknowledges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("client-id", "client-secret", "http://api.test/cb", "http://ui.test/")

	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStateStoreConsumeIsOneShot(t *testing.T) {
	store := newStateStore()
	store.put("s1", time.Now().Add(time.Minute))

	if !store.consume("s1") {
		t.Fatal("first consume should succeed")
	}
	if store.consume("s1") {
		t.Fatal("second consume should fail")
	}
}

func TestStateStoreExpires(t *testing.T) {
	store := newStateStore()
	store.put("s1", time.Now().Add(-time.Second))

	if store.consume("s1") {
		t.Fatal("expired state should not validate")
	}
}

func TestAppendToken(t *testing.T) {
	out, err := appendToken("http://ui.test/app?tab=gallery", "tok123")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	if !strings.Contains(out, "token=tok123") || !strings.Contains(out, "tab=gallery") {
		t.Fatalf("unexpected url: %s", out)
	}

	if _, err := appendToken("", "tok"); err == nil {
		t.Fatal("expected error for empty redirect url")
	}
}
