package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"go-pos-backoffice/internal/models"
)

func TestEmployeeEndpointsExcludeSelf(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	other := models.User{FirstName: "Alice", LastName: "Durand", Email: "alice@shop.test", Username: "alice", Role: models.RoleCashier, IsActive: true}
	require.NoError(t, db.Create(&other).Error)

	r := testRouter(db, admin.ID, models.RoleAdmin)

	// Own record is unreachable through every employee endpoint.
	w := doJSON(t, r, http.MethodGet, "/api/employees/"+itoa(admin.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/employees/"+itoa(admin.ID), map[string]any{
		"first_name": "Hacked", "last_name": "Admin", "email": "root@shop.test", "role": "cashier",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/employees/"+itoa(admin.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", admin.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// Another employee is reachable as usual.
	w = doJSON(t, r, http.MethodGet, "/api/employees/"+itoa(other.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Len(t, body["employees"].([]any), 1)
}

func TestEmployeeCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	r := testRouter(db, admin.ID, models.RoleAdmin)

	// Bad role: field error, nothing persisted.
	w := doJSON(t, r, http.MethodPost, "/api/employees", map[string]any{
		"first_name": "Eve", "last_name": "Short", "email": "eve@shop.test",
		"username": "eve", "password": "supersecret", "role": "owner",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	require.Contains(t, body, "fields")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// Valid input creates and names the employee in the notice.
	w = doJSON(t, r, http.MethodPost, "/api/employees", map[string]any{
		"first_name": "Eve", "last_name": "Long", "email": "eve@shop.test",
		"username": "eve", "password": "supersecret", "role": "cashier",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body = decodeBody(t, w)
	require.Equal(t, "Employee Eve Long created", body["message"])

	// The mutation left an audit entry behind.
	var entry models.ActivityLog
	require.NoError(t, db.Order("id desc").First(&entry).Error)
	require.Equal(t, "Employee added", entry.Verb)
	require.Equal(t, models.LevelSuccess, entry.Level)
	require.Equal(t, admin.ID, entry.UserID)
}
