package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhvplatform/go-permit-notification-service/internal/directory"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/logger"
)

func newDirectoryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPermitHandler(directory.NewStore(), logger.NewNop())

	router := gin.New()
	router.GET("/api/permits", h.ListPermits)
	router.GET("/api/users", h.ListUsers)
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestListPermitsDefaults(t *testing.T) {
	router := newDirectoryRouter()

	w, resp := getJSON(t, router, "/api/permits")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["page"])
	assert.Equal(t, float64(20), resp["pageSize"])
	assert.NotEmpty(t, resp["data"])
}

func TestListPermitsFiltered(t *testing.T) {
	router := newDirectoryRouter()

	w, resp := getJSON(t, router, "/api/permits?plant=Plant+A&status=submitted")
	assert.Equal(t, http.StatusOK, w.Code)

	data, ok := resp["data"].([]any)
	require.True(t, ok)
	for _, item := range data {
		permit := item.(map[string]any)
		assert.Equal(t, "Plant A", permit["plant"])
		assert.Equal(t, "submitted", permit["status"])
	}
}

func TestListPermitsSearch(t *testing.T) {
	router := newDirectoryRouter()

	_, resp := getJSON(t, router, "/api/permits?search=ptw-1003")
	data := resp["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "PTW-1003", data[0].(map[string]any)["id"])
}

func TestListPermitsPagination(t *testing.T) {
	router := newDirectoryRouter()

	_, resp := getJSON(t, router, "/api/permits?page=2&pageSize=3")
	assert.Equal(t, float64(2), resp["page"])
	assert.Equal(t, float64(3), resp["pageSize"])

	total := int(resp["total"].(float64))
	data := resp["data"].([]any)
	assert.LessOrEqual(t, len(data), 3)
	assert.Greater(t, total, 3)
}

func TestListUsersByRole(t *testing.T) {
	router := newDirectoryRouter()

	w, resp := getJSON(t, router, "/api/users?role=safety")
	assert.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].([]any)
	require.NotEmpty(t, data)
	for _, item := range data {
		assert.Equal(t, "safety", item.(map[string]any)["role"])
	}
}
