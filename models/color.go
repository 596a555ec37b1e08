package models

// ColorType enumerates the supported color finishes.
type ColorType string

const (
	ColorTypeSolid    ColorType = "solid"
	ColorTypeGradient ColorType = "gradient"
	ColorTypeMetallic ColorType = "metallic"
)

// Valid reports whether t is one of the known finishes.
func (t ColorType) Valid() bool {
	switch t {
	case ColorTypeSolid, ColorTypeGradient, ColorTypeMetallic:
		return true
	}
	return false
}

// GradientStop is one entry of a gradient color definition.
type GradientStop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// Color represents a filament color or finish. Which of the type-specific
// fields carry meaning depends on Type: solid uses HexCode, gradient uses
// GradientColors and GradientDirection, metallic uses MetallicBase and
// MetallicIntensity.
type Color struct {
	ID                int64          `json:"id" db:"id"`
	Name              string         `json:"name" db:"name"`
	Type              ColorType      `json:"type" db:"type"`
	HexCode           *string        `json:"hex_code,omitempty" db:"hex_code"`
	GradientColors    []GradientStop `json:"gradient_colors,omitempty" db:"gradient_colors"`
	GradientDirection *string        `json:"gradient_direction,omitempty" db:"gradient_direction"`
	MetallicBase      *string        `json:"metallic_base,omitempty" db:"metallic_base"`
	MetallicIntensity *float64       `json:"metallic_intensity,omitempty" db:"metallic_intensity"`
	IsActive          bool           `json:"is_active" db:"is_active"`
	IsNew             bool           `json:"is_new" db:"is_new"`
	SortOrder         int            `json:"sort_order" db:"sort_order"`
	PriceModifier     float64        `json:"price_modifier" db:"price_modifier"`
	CreatedAt         string         `json:"created_at" db:"created_at"`
	UpdatedAt         string         `json:"updated_at" db:"updated_at"`
}

func (Color) TableName() string {
	return "colors"
}
