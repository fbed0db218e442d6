package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chatcode-io/auth-service/internal/models"
	"github.com/chatcode-io/auth-service/internal/service"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func setupProtectedRouter(t *testing.T, jwtService service.JWTService) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	invoked := false
	router := gin.New()
	router.GET("/protected", RequireAuth(jwtService), func(c *gin.Context) {
		invoked = true
		c.JSON(http.StatusOK, gin.H{
			"userID":    c.GetString(ContextUserID),
			"email":     c.GetString(ContextEmail),
			"isCreator": c.GetBool(ContextIsCreator),
		})
	})
	return router, &invoked
}

func TestRequireAuth_ValidToken(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, time.Hour)
	router, invoked := setupProtectedRouter(t, jwtService)

	tok, err := jwtService.Generate(&models.User{ID: "user-1", Email: "a@x.com", IsCreator: true})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !*invoked {
		t.Error("handler should run for a valid token")
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, time.Hour)
	router, invoked := setupProtectedRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if *invoked {
		t.Error("handler must never run without a bearer token")
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, time.Hour)
	router, invoked := setupProtectedRouter(t, jwtService)

	for _, header := range []string{"Bearer", "Token abc", "abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, w.Code, http.StatusUnauthorized)
		}
	}
	if *invoked {
		t.Error("handler must never run with a malformed header")
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	issuer := service.NewJWTService(testSecret, -time.Minute)
	verifier := service.NewJWTService(testSecret, time.Hour)
	router, invoked := setupProtectedRouter(t, verifier)

	tok, err := issuer.Generate(&models.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if *invoked {
		t.Error("handler must never run with an expired token")
	}
}

func TestRequireAuth_WrongSignature(t *testing.T) {
	issuer := service.NewJWTService("a-completely-different-secret!!!", time.Hour)
	verifier := service.NewJWTService(testSecret, time.Hour)
	router, invoked := setupProtectedRouter(t, verifier)

	tok, err := issuer.Generate(&models.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if *invoked {
		t.Error("handler must never run with a forged token")
	}
}
