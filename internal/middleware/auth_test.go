package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ispcrm/internal/authz"
	"ispcrm/internal/middleware"
	"ispcrm/internal/models"
)

var secret = []byte("test-secret")

type stubUsers struct {
	users map[int]*models.User
}

func (s *stubUsers) GetByID(id int) (*models.User, error) {
	return s.users[id], nil
}

func signToken(t *testing.T, userID int, ttl time.Duration) string {
	t.Helper()
	claims := &middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func newRouter(users middleware.UserLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.Auth(secret, users), func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
	})
	r.POST("/admin", middleware.Auth(secret, users), middleware.Require(authz.ActionWriteProducts), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	r := newRouter(&stubUsers{users: map[int]*models.User{}})
	w := doRequest(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	r := newRouter(&stubUsers{users: map[int]*models.User{}})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abcdef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthBadSignature(t *testing.T) {
	r := newRouter(&stubUsers{users: map[int]*models.User{}})

	claims := &middleware.Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/me", forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	r := newRouter(&stubUsers{users: map[int]*models.User{
		1: {ID: 1, Role: models.RoleSales},
	}})
	w := doRequest(r, http.MethodGet, "/me", signToken(t, 1, -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthDeletedUser(t *testing.T) {
	// valid token whose user no longer exists
	r := newRouter(&stubUsers{users: map[int]*models.User{}})
	w := doRequest(r, http.MethodGet, "/me", signToken(t, 1, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthResolvesUser(t *testing.T) {
	r := newRouter(&stubUsers{users: map[int]*models.User{
		1: {ID: 1, Name: "Andi", Role: models.RoleSales},
	}})
	w := doRequest(r, http.MethodGet, "/me", signToken(t, 1, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"role":"sales"}`, w.Body.String())
}

func TestRequireBlocksSales(t *testing.T) {
	r := newRouter(&stubUsers{users: map[int]*models.User{
		1: {ID: 1, Role: models.RoleSales},
		2: {ID: 2, Role: models.RoleManager},
	}})

	w := doRequest(r, http.MethodPost, "/admin", signToken(t, 1, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPost, "/admin", signToken(t, 2, time.Hour))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
