package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRequest defines the structure for admin login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token string `json:"token"`
}

// AdminUser represents a back-office account, separate from community users.
// Stored in the "admin_users" collection with a bcrypt password hash.
type AdminUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"` // "admin" or "editor"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
