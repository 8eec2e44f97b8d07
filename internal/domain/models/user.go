package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a storefront customer or back-office admin. EmailCI is the folded
// email used for the unique index and login lookups.
type User struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	EmailCI      string             `bson:"email_ci"`
	PasswordHash string             `bson:"password_hash,omitempty"` // empty for Google-only accounts
	GoogleID     string             `bson:"google_id,omitempty"`
	Role         string             `bson:"role"`
	Phone        string             `bson:"phone,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}
