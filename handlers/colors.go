package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"nordlayer-server/models"
	"nordlayer-server/utils"

	"github.com/gin-gonic/gin"
)

const colorColumns = `id, name, type, hex_code, gradient_colors, gradient_direction,
	metallic_base, metallic_intensity, is_active, is_new, sort_order, price_modifier,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanColor(row rowScanner) (*models.Color, error) {
	var color models.Color
	var hexCode, gradientColors, gradientDirection, metallicBase sql.NullString
	var metallicIntensity sql.NullFloat64
	var createdAt, updatedAt sql.NullString

	err := row.Scan(
		&color.ID, &color.Name, &color.Type, &hexCode, &gradientColors, &gradientDirection,
		&metallicBase, &metallicIntensity, &color.IsActive, &color.IsNew, &color.SortOrder,
		&color.PriceModifier, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if hexCode.Valid {
		color.HexCode = &hexCode.String
	}
	if gradientColors.Valid && gradientColors.String != "" {
		json.Unmarshal([]byte(gradientColors.String), &color.GradientColors)
	}
	if gradientDirection.Valid {
		color.GradientDirection = &gradientDirection.String
	}
	if metallicBase.Valid {
		color.MetallicBase = &metallicBase.String
	}
	if metallicIntensity.Valid {
		color.MetallicIntensity = &metallicIntensity.Float64
	}
	color.CreatedAt = createdAt.String
	color.UpdatedAt = updatedAt.String
	return &color, nil
}

// serializeColor keeps the response shape type-dependent: only the
// fields meaningful for the color's finish are included.
func serializeColor(color *models.Color) gin.H {
	data := gin.H{
		"id":             color.ID,
		"name":           color.Name,
		"type":           color.Type,
		"is_active":      color.IsActive,
		"is_new":         color.IsNew,
		"sort_order":     color.SortOrder,
		"price_modifier": color.PriceModifier,
		"created_at":     color.CreatedAt,
		"updated_at":     color.UpdatedAt,
	}

	switch color.Type {
	case models.ColorTypeSolid:
		data["hex_code"] = color.HexCode
	case models.ColorTypeGradient:
		data["gradient_colors"] = color.GradientColors
		data["gradient_direction"] = color.GradientDirection
	case models.ColorTypeMetallic:
		data["metallic_base"] = color.MetallicBase
		data["metallic_intensity"] = color.MetallicIntensity
	}
	return data
}

// GetColorTypes lists the supported color finishes
func GetColorTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": []gin.H{
			{"value": models.ColorTypeSolid, "label": "Solid Color"},
			{"value": models.ColorTypeGradient, "label": "Gradient"},
			{"value": models.ColorTypeMetallic, "label": "Metallic"},
		},
	})
}

// GetColors returns colors ordered for display, optionally filtered by type
func GetColors(c *gin.Context) {
	colorType := c.Query("type")
	includeInactive := c.Query("include_inactive") == "true"

	query := `SELECT ` + colorColumns + ` FROM colors`
	var conditions []string
	var args []interface{}

	if colorType != "" {
		if !models.ColorType(colorType).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown color type"})
			return
		}
		conditions = append(conditions, "type = ?")
		args = append(args, colorType)
	}
	if !includeInactive {
		conditions = append(conditions, "is_active = 1")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY sort_order, name"

	rows, err := DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch colors"})
		return
	}
	defer rows.Close()

	colors := []gin.H{}
	for rows.Next() {
		color, err := scanColor(rows)
		if err != nil {
			continue
		}
		colors = append(colors, serializeColor(color))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": colors})
}

// GetColor returns a single color by id
func GetColor(c *gin.Context) {
	colorID := c.Param("id")

	row := DB.QueryRow(`SELECT `+colorColumns+` FROM colors WHERE id = ?`, colorID)
	color, err := scanColor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Color not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch color"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": serializeColor(color)})
}

type colorRequest struct {
	Name              string                `json:"name" binding:"required"`
	Type              string                `json:"type"`
	HexCode           *string               `json:"hex_code"`
	GradientColors    []models.GradientStop `json:"gradient_colors"`
	GradientDirection *string               `json:"gradient_direction"`
	MetallicBase      *string               `json:"metallic_base"`
	MetallicIntensity *float64              `json:"metallic_intensity"`
	IsActive          *bool                 `json:"is_active"`
	IsNew             *bool                 `json:"is_new"`
	SortOrder         int                   `json:"sort_order"`
	PriceModifier     *float64              `json:"price_modifier"`
}

func (req *colorRequest) normalize() (models.ColorType, *string, string) {
	colorType := models.ColorType(req.Type)
	if req.Type == "" {
		colorType = models.ColorTypeSolid
	}
	if !colorType.Valid() {
		return colorType, nil, "Unknown color type"
	}
	if colorType == models.ColorTypeSolid {
		if req.HexCode == nil {
			return colorType, nil, "hex_code is required for solid colors"
		}
		if !utils.ValidHexColor(*req.HexCode) {
			return colorType, nil, "hex_code must look like #RRGGBB"
		}
	}
	if colorType == models.ColorTypeMetallic && req.MetallicBase != nil && !utils.ValidHexColor(*req.MetallicBase) {
		return colorType, nil, "metallic_base must look like #RRGGBB"
	}

	var gradientJSON *string
	if len(req.GradientColors) > 0 {
		encoded, err := json.Marshal(req.GradientColors)
		if err != nil {
			return colorType, nil, "Invalid gradient_colors"
		}
		s := string(encoded)
		gradientJSON = &s
	}
	return colorType, gradientJSON, ""
}

// CreateColor adds a new color; names are unique across the palette
func CreateColor(c *gin.Context) {
	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	colorType, gradientJSON, problem := req.normalize()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	var existing int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM colors WHERE name = ?`, req.Name).Scan(&existing); err == nil && existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Color with this name already exists"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	isNew := false
	if req.IsNew != nil {
		isNew = *req.IsNew
	}
	priceModifier := 1.0
	if req.PriceModifier != nil {
		priceModifier = *req.PriceModifier
	}

	result, err := DB.Exec(`
		INSERT INTO colors (name, type, hex_code, gradient_colors, gradient_direction,
			metallic_base, metallic_intensity, is_active, is_new, sort_order, price_modifier)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Name, colorType, req.HexCode, gradientJSON, req.GradientDirection,
		req.MetallicBase, req.MetallicIntensity, isActive, isNew, req.SortOrder, priceModifier,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create color"})
		return
	}

	colorID, _ := result.LastInsertId()
	row := DB.QueryRow(`SELECT `+colorColumns+` FROM colors WHERE id = ?`, colorID)
	color, err := scanColor(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created color"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": serializeColor(color)})
}

// UpdateColor replaces a color's definition
func UpdateColor(c *gin.Context) {
	colorID := c.Param("id")

	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	colorType, gradientJSON, problem := req.normalize()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	isNew := false
	if req.IsNew != nil {
		isNew = *req.IsNew
	}
	priceModifier := 1.0
	if req.PriceModifier != nil {
		priceModifier = *req.PriceModifier
	}

	result, err := DB.Exec(`
		UPDATE colors SET name = ?, type = ?, hex_code = ?, gradient_colors = ?,
			gradient_direction = ?, metallic_base = ?, metallic_intensity = ?,
			is_active = ?, is_new = ?, sort_order = ?, price_modifier = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		req.Name, colorType, req.HexCode, gradientJSON, req.GradientDirection,
		req.MetallicBase, req.MetallicIntensity, isActive, isNew, req.SortOrder,
		priceModifier, colorID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update color"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Color not found"})
		return
	}

	row := DB.QueryRow(`SELECT `+colorColumns+` FROM colors WHERE id = ?`, colorID)
	color, err := scanColor(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated color"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": serializeColor(color)})
}

// DeleteColor removes a color from the palette
func DeleteColor(c *gin.Context) {
	colorID := c.Param("id")

	result, err := DB.Exec(`DELETE FROM colors WHERE id = ?`, colorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete color"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Color not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Color deleted"})
}
