package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"nordlayer-server/database"
	"nordlayer-server/migrations"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupTestDB migrates a fresh in-memory database and points the
// handlers at it.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	// every pool connection would get its own in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = migrations.Up(db.DB)
	require.NoError(t, err)

	InitializeHandlers(db)
	return db
}

func newAPIRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	setupTestDB(t)

	// handler-level behavior only; the auth middleware has its own tests
	router := gin.New()
	api := router.Group("/api/v1")
	{
		colors := api.Group("/colors")
		{
			colors.GET("/", GetColors)
			colors.GET("/types", GetColorTypes)
			colors.GET("/:id", GetColor)
			colors.POST("/", CreateColor)
			colors.PUT("/:id", UpdateColor)
			colors.DELETE("/:id", DeleteColor)
		}
		servicesGroup := api.Group("/services")
		{
			servicesGroup.GET("/", GetServices)
			servicesGroup.GET("/:id", GetService)
			servicesGroup.POST("/", CreateService)
			servicesGroup.PUT("/:id", UpdateService)
			servicesGroup.DELETE("/:id", DeleteService)
		}
		orders := api.Group("/orders")
		{
			orders.POST("/", CreateOrder)
			orders.GET("/", GetOrders)
			orders.GET("/:id", GetOrder)
			orders.PUT("/:id", UpdateOrder)
			orders.DELETE("/:id", DeleteOrder)
		}
		reviews := api.Group("/reviews")
		{
			reviews.GET("/", GetReviews)
			reviews.GET("/stats", GetReviewStats)
			reviews.POST("/", CreateReview)
			reviews.PUT("/:id/moderate", ModerateReview)
			reviews.DELETE("/:id", DeleteReview)
		}
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(encoded)
	} else {
		body = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	return data
}

func decodeDataList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)

	var data []map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	return data
}
