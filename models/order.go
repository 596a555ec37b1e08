package models

import "encoding/json"

// Order represents a customer print order
type Order struct {
	ID                 int64           `json:"id" db:"id"`
	CustomerName       string          `json:"customer_name" db:"customer_name"`
	CustomerEmail      *string         `json:"customer_email" db:"customer_email"`
	CustomerPhone      *string         `json:"customer_phone" db:"customer_phone"`
	CustomerContact    *string         `json:"customer_contact" db:"customer_contact"`
	AlternativeContact *string         `json:"alternative_contact" db:"alternative_contact"`
	ServiceID          int64           `json:"service_id" db:"service_id"`
	CustomerID         *int64          `json:"customer_id,omitempty" db:"customer_id"`
	Specifications     json.RawMessage `json:"specifications" db:"specifications"`
	Status             string          `json:"status" db:"status"`
	TotalPrice         *float64        `json:"total_price" db:"total_price"`
	Source             string          `json:"source" db:"source"`
	Notes              *string         `json:"notes" db:"notes"`
	DeliveryNeeded     *string         `json:"delivery_needed" db:"delivery_needed"`
	DeliveryDetails    *string         `json:"delivery_details" db:"delivery_details"`
	CreatedAt          string          `json:"created_at" db:"created_at"`
	UpdatedAt          string          `json:"updated_at" db:"updated_at"`
	Files              []OrderFile     `json:"files,omitempty"`
}

// OrderFile is an uploaded model file attached to an order
type OrderFile struct {
	ID               int64   `json:"id" db:"id"`
	OrderID          int64   `json:"order_id" db:"order_id"`
	FilePath         string  `json:"file_path" db:"file_path"`
	OriginalFilename string  `json:"original_filename" db:"original_filename"`
	FileSize         *int64  `json:"file_size" db:"file_size"`
	FileType         *string `json:"file_type" db:"file_type"`
	CreatedAt        string  `json:"created_at" db:"created_at"`
}

// OrderStatuses lists the states an order moves through.
var OrderStatuses = []string{"new", "confirmed", "in_progress", "ready", "completed", "cancelled"}

// ValidOrderStatus reports whether status is a known order state.
func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (Order) TableName() string {
	return "orders"
}

func (OrderFile) TableName() string {
	return "order_files"
}
