package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":    uuid.NewString(),
		"email": "chofer@example.com",
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRol(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": GetClaims(c).Rol})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	w := doGet(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestJWTAuthMalformedToken(t *testing.T) {
	w := doGet(protectedRouter(), "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, "chofer", time.Now().Add(-time.Hour))
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	token := signToken(t, "otro-secreto", "chofer", time.Now().Add(time.Hour))
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidTokenPassesClaims(t *testing.T) {
	token := signToken(t, testSecret, "chofer", time.Now().Add(time.Hour))
	w := doGet(protectedRouter(), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "chofer", body["role"])
}

func TestGetClaimsWithoutJWTAuthReturnsNil(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.NotPanics(t, func() {
		assert.Nil(t, GetClaims(c))
	})
}

func TestRequireRolRejectsWrongRole(t *testing.T) {
	token := signToken(t, testSecret, "cliente", time.Now().Add(time.Hour))
	w := doGet(protectedRouter("admin"), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolAllowsListedRoles(t *testing.T) {
	token := signToken(t, testSecret, "chofer", time.Now().Add(time.Hour))
	w := doGet(protectedRouter("admin", "chofer"), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
