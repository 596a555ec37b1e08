package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"nordlayer-server/models"

	"github.com/gin-gonic/gin"
)

const serviceColumns = `id, name, description, is_active, category, features, icon, created_at, updated_at`

func scanService(row rowScanner) (*models.Service, error) {
	var service models.Service
	var description, category, features, icon sql.NullString
	var createdAt, updatedAt sql.NullString

	err := row.Scan(
		&service.ID, &service.Name, &description, &service.IsActive, &category,
		&features, &icon, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		service.Description = &description.String
	}
	if category.Valid {
		service.Category = &category.String
	}
	if features.Valid && features.String != "" {
		json.Unmarshal([]byte(features.String), &service.Features)
	}
	if icon.Valid {
		service.Icon = &icon.String
	} else {
		// Frontend expects an icon identifier; "cube" is the catalog default
		fallback := "cube"
		service.Icon = &fallback
	}
	service.CreatedAt = createdAt.String
	service.UpdatedAt = updatedAt.String
	return &service, nil
}

// GetServices lists catalog services with optional category filtering
func GetServices(c *gin.Context) {
	category := c.Query("category")
	activeOnly := c.Query("active_only") != "false"

	query := `SELECT ` + serviceColumns + ` FROM services`
	var conditions []string
	var args []interface{}

	if category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, category)
	}
	if activeOnly {
		conditions = append(conditions, "is_active = 1")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY name"

	rows, err := DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			continue
		}
		services = append(services, *service)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": services})
}

// GetService returns a single service by id
func GetService(c *gin.Context) {
	serviceID := c.Param("id")

	row := DB.QueryRow(`SELECT `+serviceColumns+` FROM services WHERE id = ?`, serviceID)
	service, err := scanService(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": service})
}

type serviceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Features    []string `json:"features"`
	Icon        *string  `json:"icon"`
	IsActive    *bool    `json:"is_active"`
}

func (req *serviceRequest) featuresJSON() (*string, error) {
	if req.Features == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(req.Features)
	if err != nil {
		return nil, err
	}
	s := string(encoded)
	return &s, nil
}

// CreateService adds a catalog service
func CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	features, err := req.featuresJSON()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid features"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	icon := "cube"
	if req.Icon != nil {
		icon = *req.Icon
	}

	result, err := DB.Exec(`
		INSERT INTO services (name, description, is_active, category, features, icon)
		VALUES (?, ?, ?, ?, ?, ?)`,
		req.Name, req.Description, isActive, req.Category, features, icon,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	serviceID, _ := result.LastInsertId()
	row := DB.QueryRow(`SELECT `+serviceColumns+` FROM services WHERE id = ?`, serviceID)
	service, err := scanService(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created service"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": service})
}

// UpdateService replaces a service definition
func UpdateService(c *gin.Context) {
	serviceID := c.Param("id")

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	features, err := req.featuresJSON()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid features"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	icon := "cube"
	if req.Icon != nil {
		icon = *req.Icon
	}

	result, err := DB.Exec(`
		UPDATE services SET name = ?, description = ?, is_active = ?, category = ?,
			features = ?, icon = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		req.Name, req.Description, isActive, req.Category, features, icon, serviceID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	row := DB.QueryRow(`SELECT `+serviceColumns+` FROM services WHERE id = ?`, serviceID)
	service, err := scanService(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": service})
}

// DeleteService removes a service; orders keep their service_id reference
func DeleteService(c *gin.Context) {
	serviceID := c.Param("id")

	var orderCount int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM orders WHERE service_id = ?`, serviceID).Scan(&orderCount); err == nil && orderCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service has existing orders and cannot be deleted"})
		return
	}

	result, err := DB.Exec(`DELETE FROM services WHERE id = ?`, serviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deleted"})
}
