package signup

import "github.com/marknest/api/auth/models"

// Model is the signup request payload.
type Model struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phonenumber"`
	Gender      string `json:"gender"`
}

// Response is returned on successful account creation.
type Response struct {
	Message string              `json:"message"`
	User    models.UserResponse `json:"user"`
	Token   string              `json:"token"`
}
