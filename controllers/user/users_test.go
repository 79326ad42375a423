package userControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/database/dbtest"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/session"
)

func setup(t *testing.T) (*gorm.DB, *gin.Engine, *session.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	issuer := session.NewIssuer("test-secret", time.Hour)
	log := zap.NewNop()

	r := gin.New()
	r.Use(middleware.Session(issuer))
	user := r.Group("/user", middleware.RequireUser)
	user.GET("", GetUser(db, log))
	user.PUT("", UpdateUser(db, log))
	r.GET("/admin/users", GetAllUsers(db, log))
	return db, r, issuer
}

func call(t *testing.T, r *gin.Engine, issuer *session.Issuer, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := issuer.Issue(userID, "x@example.com", "X")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetAndUpdateUser(t *testing.T) {
	db, r, issuer := setup(t)
	u := models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "secret-hash"}
	require.NoError(t, db.Create(&u).Error)

	w := call(t, r, issuer, http.MethodGet, "/user", u.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"asha@example.com"`)
	assert.NotContains(t, w.Body.String(), "secret-hash")

	w = call(t, r, issuer, http.MethodPut, "/user", u.ID, `{"name":"  Asha K  ","picture":"https://cdn.example.com/a.png"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", u.ID).Error)
	assert.Equal(t, "Asha K", reloaded.Name)
	assert.Equal(t, "https://cdn.example.com/a.png", reloaded.Picture)

	w = call(t, r, issuer, http.MethodPut, "/user", u.ID, `{"picture":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "picture must be a valid URL")

	w = call(t, r, issuer, http.MethodGet, "/user", "ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = call(t, r, issuer, http.MethodGet, "/user", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAllUsers(t *testing.T) {
	db, r, issuer := setup(t)
	require.NoError(t, db.Create(&models.User{Name: "Asha", Email: "asha@example.com"}).Error)
	require.NoError(t, db.Create(&models.User{Name: "Ravi", Email: "ravi@example.com"}).Error)

	w := call(t, r, issuer, http.MethodGet, "/admin/users?search=RAVI", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "ravi@example.com", users[0].Email)
}
