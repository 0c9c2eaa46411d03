package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(role models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/secure", AuthMiddleware(role), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account": AccountID(c)})
	})
	return router
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router := protectedRouter(models.RoleVendor)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not provided")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := protectedRouter(models.RoleVendor)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "token-without-scheme")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	router := protectedRouter(models.RoleVendor)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRoleGates(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	vendorToken, err := utils.GenerateToken("vendor-1", string(models.RoleVendor))
	require.NoError(t, err)

	// right role passes and exposes the account id
	router := protectedRouter(models.RoleVendor)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+vendorToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vendor-1")

	// vendor token on an admin route is forbidden
	adminRouter := protectedRouter(models.RoleAdmin)
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+vendorToken)
	w = httptest.NewRecorder()
	adminRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddlewareSuperAdminPassesAdminGate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken("root-1", string(models.RoleSuperAdmin))
	require.NoError(t, err)

	router := protectedRouter(models.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
