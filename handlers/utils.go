package handlers

import (
	"time"

	"nordlayer-server/config"
	"nordlayer-server/database"

	"github.com/golang-jwt/jwt/v5"
)

var DB *database.DB

// InitializeHandlers sets the database connection for all handlers
func InitializeHandlers(db *database.DB) {
	DB = db
}

// Claims represents the JWT claims
type Claims struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// generateJWT generates a signed access token for an admin user
func generateJWT(userID int64, email string, isAdmin bool) (string, error) {
	claims := &Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}
