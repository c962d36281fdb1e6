package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusvoice/policy-board/backend/internal/token"
)

func newTestRouter(issuer *token.Issuer, called *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", RequireAuth(issuer), func(c *gin.Context) {
		*called = true
		userID, _ := c.Get("user_id")
		username, _ := c.Get("username")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	return r
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	called := false
	r := newTestRouter(issuer, &called)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Unauthorized"}`, w.Body.String())
	assert.False(t, called, "handler must not run without a token")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	called := false
	r := newTestRouter(issuer, &called)

	for _, header := range []string{"Bearer", "Basic abc123", "just-a-token"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
	assert.False(t, called)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	other := token.NewIssuer("other-secret", time.Hour)
	called := false
	r := newTestRouter(issuer, &called)

	forged, err := other.Issue(1, "a@x.com", "a")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := token.NewIssuer("test-secret", -time.Minute)
	issuer := token.NewIssuer("test-secret", time.Hour)
	called := false
	r := newTestRouter(issuer, &called)

	tokenStr, err := expired.Issue(1, "a@x.com", "a")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	called := false
	r := newTestRouter(issuer, &called)

	tokenStr, err := issuer.Issue(7, "bob@example.com", "bob")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.JSONEq(t, `{"user_id":7,"username":"bob"}`, w.Body.String())
}
