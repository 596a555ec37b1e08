package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"nordlayer-server/models"
	"nordlayer-server/services"

	"github.com/gin-gonic/gin"
)

const reviewColumns = `id, customer_name, customer_email, rating, title, content, images,
	is_approved, is_featured, created_at, updated_at`

func scanReview(row rowScanner) (*models.Review, error) {
	var review models.Review
	var title, images sql.NullString
	var createdAt, updatedAt sql.NullString

	err := row.Scan(
		&review.ID, &review.CustomerName, &review.CustomerEmail, &review.Rating,
		&title, &review.Content, &images, &review.IsApproved, &review.IsFeatured,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if title.Valid {
		review.Title = &title.String
	}
	review.Images = []models.ReviewImage{}
	if images.Valid && images.String != "" {
		json.Unmarshal([]byte(images.String), &review.Images)
	}
	review.CreatedAt = createdAt.String
	review.UpdatedAt = updatedAt.String
	return &review, nil
}

// GetReviews lists reviews. Public callers see approved reviews only;
// the admin dashboard passes approved_only=false.
func GetReviews(c *gin.Context) {
	approvedOnly := c.Query("approved_only") != "false"
	featuredOnly := c.Query("featured_only") == "true"
	ratingFilter := c.Query("rating")

	query := `SELECT ` + reviewColumns + ` FROM reviews`
	var conditions []string
	var args []interface{}

	if ratingFilter != "" {
		rating, err := strconv.Atoi(ratingFilter)
		if err != nil || rating < 1 || rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}
		conditions = append(conditions, "rating = ?")
		args = append(args, rating)
	}
	if approvedOnly {
		conditions = append(conditions, "is_approved = 1")
	}
	if featuredOnly {
		conditions = append(conditions, "is_featured = 1")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			continue
		}
		reviews = append(reviews, *review)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
}

// GetReviewStats returns the approved-review average rating and count
func GetReviewStats(c *gin.Context) {
	var average sql.NullFloat64
	var count int
	err := DB.QueryRow(`SELECT AVG(rating), COUNT(*) FROM reviews WHERE is_approved = 1`).Scan(&average, &count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"average_rating": average.Float64,
			"total_reviews":  count,
		},
	})
}

// CreateReview accepts a public review submission; it stays hidden
// until an admin approves it
func CreateReview(c *gin.Context) {
	var req struct {
		CustomerName  string               `json:"customer_name" binding:"required"`
		CustomerEmail string               `json:"customer_email" binding:"required,email"`
		Rating        int                  `json:"rating" binding:"required,min=1,max=5"`
		Title         *string              `json:"title"`
		Content       string               `json:"content" binding:"required"`
		Images        []models.ReviewImage `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var images *string
	if len(req.Images) > 0 {
		encoded, err := json.Marshal(req.Images)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid images"})
			return
		}
		s := string(encoded)
		images = &s
	}

	result, err := DB.Exec(`
		INSERT INTO reviews (customer_name, customer_email, rating, title, content, images, is_approved, is_featured)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0)`,
		req.CustomerName, req.CustomerEmail, req.Rating, req.Title, req.Content, images,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	reviewID, _ := result.LastInsertId()
	row := DB.QueryRow(`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, reviewID)
	review, err := scanReview(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": review})
}

// ModerateReview approves or features a review
func ModerateReview(c *gin.Context) {
	reviewID := c.Param("id")

	var req struct {
		IsApproved *bool `json:"is_approved"`
		IsFeatured *bool `json:"is_featured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.IsApproved == nil && req.IsFeatured == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to moderate"})
		return
	}

	row := DB.QueryRow(`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, reviewID)
	review, err := scanReview(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		}
		return
	}

	if req.IsApproved != nil {
		review.IsApproved = *req.IsApproved
	}
	if req.IsFeatured != nil {
		review.IsFeatured = *req.IsFeatured
	}

	_, err = DB.Exec(`
		UPDATE reviews SET is_approved = ?, is_featured = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		review.IsApproved, review.IsFeatured, reviewID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": review})
}

// DeleteReview removes a review
func DeleteReview(c *gin.Context) {
	reviewID := c.Param("id")

	result, err := DB.Exec(`DELETE FROM reviews WHERE id = ?`, reviewID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}

// UploadReviewImage pushes a review photo to Cloudinary and attaches
// the resulting URL to the review
func UploadReviewImage(c *gin.Context) {
	reviewID := c.Param("id")

	if services.Cloudinary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	row := DB.QueryRow(`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, reviewID)
	review, err := scanReview(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		}
		return
	}

	result, err := services.Cloudinary.UploadImage(file, "reviews")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	review.Images = append(review.Images, models.ReviewImage{
		URL:     result.SecureURL,
		Caption: c.PostForm("caption"),
	})
	encoded, err := json.Marshal(review.Images)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode images"})
		return
	}

	_, err = DB.Exec(`UPDATE reviews SET images = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(encoded), reviewID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": review})
}
