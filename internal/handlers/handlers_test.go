package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-pos-backoffice/internal/audit"
	"go-pos-backoffice/internal/database"
	"go-pos-backoffice/internal/middleware"
	"go-pos-backoffice/internal/models"
	"go-pos-backoffice/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// testRouter mounts the API the way main does, but with the session
// already resolved to the given principal.
func testRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	employeeRepo := repository.NewEmployeeRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	recorder := audit.NewRecorder(db, zerolog.Nop())

	employeeHandler := NewEmployeeHandler(employeeRepo, recorder)
	productHandler := NewProductHandler(productRepo, categoryRepo, recorder)
	saleHandler := NewSaleHandler(saleRepo, productRepo, recorder)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxRole, role)
	})

	r.GET("/api/employees", employeeHandler.List)
	r.POST("/api/employees", employeeHandler.Create)
	r.GET("/api/employees/:id", employeeHandler.Detail)
	r.PUT("/api/employees/:id", employeeHandler.Update)
	r.DELETE("/api/employees/:id", employeeHandler.Delete)

	r.DELETE("/api/products/:id", productHandler.Delete)

	r.GET("/api/sales", saleHandler.List)
	r.POST("/api/sales", saleHandler.Create)
	r.GET("/api/sales/:id/json", saleHandler.DetailJSON)
	r.POST("/api/sales/bulk-delete", saleHandler.BulkDelete)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedAdmin(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	admin := models.User{FirstName: "Root", LastName: "Admin", Email: "root@shop.test", Username: "root", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware("secret"))
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleBlocksCashier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, uint(7))
		c.Set(middleware.CtxRole, models.RoleCashier)
	})
	r.Use(middleware.RequireRole(models.RoleAdmin))
	r.GET("/api/admin-only", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/admin-only", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Access denied")
}
