package service

import "campus/entities"

type Signup struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// AuthService issues and resolves bearer tokens for registered users.
type AuthService interface {
	Signup(in Signup) (*entities.User, error)
	// Login returns a signed token for valid credentials.
	Login(username, password string) (string, *entities.User, error)
	// Resolve maps a bearer token back to its user. Any defect in the token,
	// its signature, its expiry or the user record fails closed.
	Resolve(token string) (*entities.User, error)
}
