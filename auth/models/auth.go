package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// ProviderLocal marks accounts created through email/password signup.
const ProviderLocal = "local"

// User is the persisted account record. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ObjectId     uuid.UUID `json:"objectId" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PhoneNumber  string    `json:"phonenumber" db:"phone_number"`
	Gender       string    `json:"gender" db:"gender"`
	Password     []byte    `json:"-" db:"password_hash"`
	AuthProvider string    `json:"authProvider" db:"auth_provider"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// UserResponse is the public projection of a User returned by the API.
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phonenumber"`
	Gender       string    `json:"gender"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToResponse strips credential material from a User.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ObjectId.String(),
		Name:         u.Name,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		Gender:       u.Gender,
		AuthProvider: u.AuthProvider,
		CreatedAt:    u.CreatedAt,
	}
}
