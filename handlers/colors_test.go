package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSolidColorAndFetchIt(t *testing.T) {
	router := newAPIRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/colors/", gin.H{
		"name":     "Jet Black",
		"hex_code": "#111111",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeData(t, w)
	assert.Equal(t, "solid", created["type"])
	assert.Equal(t, "#111111", created["hex_code"])
	assert.Equal(t, float64(1), created["price_modifier"])
	assert.NotContains(t, created, "gradient_colors")

	w = doJSON(t, router, http.MethodGet, "/api/v1/colors/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decodeData(t, w)
	assert.Equal(t, "Jet Black", fetched["name"])
}

func TestSolidColorRequiresValidHexCode(t *testing.T) {
	router := newAPIRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/colors/", gin.H{"name": "No Hex"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/colors/", gin.H{
		"name":     "Bad Hex",
		"hex_code": "red",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestColorNamesAreUnique(t *testing.T) {
	router := newAPIRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/colors/", gin.H{
		"name":     "Jet Black",
		"hex_code": "#111111",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/colors/", gin.H{
		"name":     "Jet Black",
		"hex_code": "#222222",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGradientColorSerializesTypeSpecificFields(t *testing.T) {
	router := newAPIRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/colors/", gin.H{
		"name": "Sunrise",
		"type": "gradient",
		"gradient_colors": []gin.H{
			{"color": "#FF0000", "position": 0},
			{"color": "#FFFF00", "position": 1},
		},
		"gradient_direction": "linear",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeData(t, w)
	assert.Equal(t, "gradient", created["type"])
	assert.Equal(t, "linear", created["gradient_direction"])
	assert.NotContains(t, created, "hex_code")
	assert.NotContains(t, created, "metallic_base")

	stops, ok := created["gradient_colors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, stops, 2)
}

func TestGetColorsFiltersInactiveAndByType(t *testing.T) {
	router := newAPIRouter(t)

	for _, payload := range []gin.H{
		{"name": "Jet Black", "hex_code": "#111111"},
		{"name": "Retired Gray", "hex_code": "#888888", "is_active": false},
		{"name": "Chrome", "type": "metallic", "metallic_base": "#C0C0C0", "metallic_intensity": 0.8},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/v1/colors/", payload)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/colors/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeDataList(t, w), 2)

	w = doJSON(t, router, http.MethodGet, "/api/v1/colors/?include_inactive=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeDataList(t, w), 3)

	w = doJSON(t, router, http.MethodGet, "/api/v1/colors/?type=metallic", nil)
	require.Equal(t, http.StatusOK, w.Code)
	metallics := decodeDataList(t, w)
	require.Len(t, metallics, 1)
	assert.Equal(t, "Chrome", metallics[0]["name"])
	assert.Equal(t, 0.8, metallics[0]["metallic_intensity"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/colors/?type=neon", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndDeleteColor(t *testing.T) {
	router := newAPIRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/colors/", gin.H{
		"name":     "Jet Black",
		"hex_code": "#111111",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/colors/1", gin.H{
		"name":           "Midnight Black",
		"hex_code":       "#050505",
		"is_new":         true,
		"price_modifier": 1.25,
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeData(t, w)
	assert.Equal(t, "Midnight Black", updated["name"])
	assert.Equal(t, true, updated["is_new"])
	assert.Equal(t, 1.25, updated["price_modifier"])

	w = doJSON(t, router, http.MethodDelete, "/api/v1/colors/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/colors/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/colors/99", gin.H{
		"name":     "Ghost",
		"hex_code": "#EEEEEE",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetColorTypes(t *testing.T) {
	router := newAPIRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/colors/types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	types := decodeDataList(t, w)
	require.Len(t, types, 3)
	assert.Equal(t, "solid", types[0]["value"])
}
