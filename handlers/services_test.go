package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateServiceDefaultsIconAndActive(t *testing.T) {
	router := newAPIRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/services/", gin.H{
		"name":     "SLA Printing",
		"features": []string{"0.05mm layers", "resin"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeData(t, w)
	assert.Equal(t, "cube", created["icon"])
	assert.Equal(t, true, created["is_active"])
	assert.Equal(t, []interface{}{"0.05mm layers", "resin"}, created["features"])
}

func TestGetServicesFiltersCategoryAndActive(t *testing.T) {
	router := newAPIRouter(t)

	createTestService(t, router, "FDM Printing", true)
	createTestService(t, router, "Retired Modeling", false)

	w := doJSON(t, router, http.MethodPost, "/api/v1/services/", gin.H{
		"name":     "3D Scanning",
		"category": "scanning",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// default listing hides inactive services
	w = doJSON(t, router, http.MethodGet, "/api/v1/services/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeDataList(t, w), 2)

	w = doJSON(t, router, http.MethodGet, "/api/v1/services/?active_only=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeDataList(t, w), 3)

	w = doJSON(t, router, http.MethodGet, "/api/v1/services/?category=scanning", nil)
	require.Equal(t, http.StatusOK, w.Code)
	scanning := decodeDataList(t, w)
	require.Len(t, scanning, 1)
	assert.Equal(t, "3D Scanning", scanning[0]["name"])
}

func TestUpdateServiceReplacesDefinition(t *testing.T) {
	router := newAPIRouter(t)
	createTestService(t, router, "FDM Printing", true)

	w := doJSON(t, router, http.MethodPut, "/api/v1/services/1", gin.H{
		"name":      "FDM Printing",
		"icon":      "printer",
		"features":  []string{"PLA", "PETG"},
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeData(t, w)
	assert.Equal(t, "printer", updated["icon"])
	assert.Equal(t, false, updated["is_active"])

	w = doJSON(t, router, http.MethodPut, "/api/v1/services/9", gin.H{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteServiceRefusesWhenOrdersExist(t *testing.T) {
	router := newAPIRouter(t)
	createTestService(t, router, "FDM Printing", true)

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/", gin.H{
		"customer_name": "Alice",
		"service_id":    1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/services/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// freeing the order unblocks the delete
	w = doJSON(t, router, http.MethodDelete, "/api/v1/orders/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/v1/services/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
