package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAuthMiddleware_SetsClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ConfigureTokens("test-secret", 1)

	token, err := GenerateToken("user-1", "owner")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := gin.New()
	r.GET("/owner", AuthMiddleware(), RequireRole("owner"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userId"))
	})
	r.GET("/customer", AuthMiddleware(), RequireRole("customer"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/owner", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "user-1" {
		t.Fatalf("expected 200 user-1, got %d %q", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/customer", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/owner", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", w.Code)
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatal("expected password to match its hash")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("expected wrong password to fail")
	}
}
