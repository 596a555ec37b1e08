package models

// User is an admin account. The storefront itself is anonymous; users
// only exist to guard the moderation and catalog-management endpoints.
type User struct {
	ID             int64   `json:"id" db:"id"`
	Email          string  `json:"email" db:"email"`
	HashedPassword string  `json:"-" db:"hashed_password"`
	FullName       *string `json:"full_name" db:"full_name"`
	IsActive       bool    `json:"is_active" db:"is_active"`
	IsAdmin        bool    `json:"is_admin" db:"is_admin"`
	CreatedAt      string  `json:"created_at" db:"created_at"`
	UpdatedAt      string  `json:"updated_at" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
