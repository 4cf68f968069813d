package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"agentchat/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func authRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.POST("/api/register", Register(db))
	r.POST("/api/login", Login(db))
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.POST("/api/logout", Logout())
	protected.GET("/api/me", Me(db))
	return r
}

func postForm(t *testing.T, r *gin.Engine, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode auth response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access_token in response: %s", w.Body.String())
	}
	return resp.AccessToken
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	db := setupDB(t)
	r := authRouter(db)
	creds := url.Values{"username": {"carol"}, "password": {"pass123"}}

	w := postForm(t, r, "/api/register", creds)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 on register, got %d: %s", w.Code, w.Body.String())
	}
	token := tokenFrom(t, w)

	// token from registration works against protected routes
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	if me.Code != http.StatusOK || !strings.Contains(me.Body.String(), "carol") {
		t.Fatalf("expected current user, got %d: %s", me.Code, me.Body.String())
	}

	// login issues a fresh token
	w = postForm(t, r, "/api/login", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d: %s", w.Code, w.Body.String())
	}
	loginToken := tokenFrom(t, w)

	// logout revokes the presented token
	req = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer "+loginToken)
	out := httptest.NewRecorder()
	r.ServeHTTP(out, req)
	if out.Code != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", out.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginToken)
	after := httptest.NewRecorder()
	r.ServeHTTP(after, req)
	if after.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", after.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupDB(t)
	r := authRouter(db)

	postForm(t, r, "/api/register", url.Values{"username": {"dave"}, "password": {"pass123"}})
	w := postForm(t, r, "/api/login", url.Values{"username": {"dave"}, "password": {"wrong1"}})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on bad password, got %d", w.Code)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupDB(t)
	r := authRouter(db)
	creds := url.Values{"username": {"erin"}, "password": {"pass123"}}

	if w := postForm(t, r, "/api/register", creds); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if w := postForm(t, r, "/api/register", creds); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate username, got %d", w.Code)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	db := setupDB(t)
	r := authRouter(db)

	w := postForm(t, r, "/api/register", url.Values{"username": {"frank"}, "password": {"lettersonly"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for password without a digit, got %d", w.Code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	db := setupDB(t)
	r := authRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}
