package login

// Model is the login request payload.
type Model struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response carries the session token for an authenticated user.
type Response struct {
	Token string `json:"token"`
}
