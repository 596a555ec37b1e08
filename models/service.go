package models

// Service is a printing service offered in the catalog. Pricing used to
// live here but moved out of the schema; quotes happen per order now.
type Service struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description *string  `json:"description" db:"description"`
	IsActive    bool     `json:"is_active" db:"is_active"`
	Category    *string  `json:"category" db:"category"`
	Features    []string `json:"features,omitempty" db:"features"`
	Icon        *string  `json:"icon" db:"icon"`
	CreatedAt   string   `json:"created_at" db:"created_at"`
	UpdatedAt   string   `json:"updated_at" db:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}
