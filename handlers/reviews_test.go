package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitReview(t *testing.T, router *gin.Engine, name, email string, rating int) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/reviews/", gin.H{
		"customer_name":  name,
		"customer_email": email,
		"rating":         rating,
		"content":        "The print quality exceeded expectations.",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestNewReviewsStartUnapproved(t *testing.T) {
	router := newAPIRouter(t)

	submitReview(t, router, "Alice", "alice@example.com", 5)

	// hidden from the public listing until moderated
	w := doJSON(t, router, http.MethodGet, "/api/v1/reviews/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeDataList(t, w))

	// visible on the admin listing
	w = doJSON(t, router, http.MethodGet, "/api/v1/reviews/?approved_only=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeDataList(t, w)
	require.Len(t, all, 1)
	assert.Equal(t, false, all[0]["is_approved"])
}

func TestModerationPublishesReview(t *testing.T) {
	router := newAPIRouter(t)

	submitReview(t, router, "Alice", "alice@example.com", 5)

	w := doJSON(t, router, http.MethodPut, "/api/v1/reviews/1/moderate", gin.H{
		"is_approved": true,
		"is_featured": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/reviews/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	published := decodeDataList(t, w)
	require.Len(t, published, 1)
	assert.Equal(t, true, published[0]["is_approved"])
	assert.Equal(t, true, published[0]["is_featured"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/reviews/?featured_only=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeDataList(t, w), 1)
}

func TestReviewValidation(t *testing.T) {
	router := newAPIRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/reviews/", gin.H{
		"customer_name":  "Alice",
		"customer_email": "alice@example.com",
		"rating":         9,
		"content":        "off the scale",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/reviews/?rating=9", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/reviews/1/moderate", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewStatsCountApprovedOnly(t *testing.T) {
	router := newAPIRouter(t)

	submitReview(t, router, "Alice", "alice@example.com", 5)
	submitReview(t, router, "Bob", "bob@example.com", 3)
	submitReview(t, router, "Carol", "carol@example.com", 1)

	for _, id := range []string{"1", "2"} {
		w := doJSON(t, router, http.MethodPut, "/api/v1/reviews/"+id+"/moderate", gin.H{"is_approved": true})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/reviews/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeData(t, w)
	assert.Equal(t, float64(2), stats["total_reviews"])
	assert.Equal(t, 4.0, stats["average_rating"])
}

func TestRatingFilter(t *testing.T) {
	router := newAPIRouter(t)

	submitReview(t, router, "Alice", "alice@example.com", 5)
	submitReview(t, router, "Bob", "bob@example.com", 3)

	w := doJSON(t, router, http.MethodGet, "/api/v1/reviews/?approved_only=false&rating=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fives := decodeDataList(t, w)
	require.Len(t, fives, 1)
	assert.Equal(t, "Alice", fives[0]["customer_name"])
}

func TestDeleteReview(t *testing.T) {
	router := newAPIRouter(t)

	submitReview(t, router, "Alice", "alice@example.com", 5)

	w := doJSON(t, router, http.MethodDelete, "/api/v1/reviews/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/reviews/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
