package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyExists      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooLong    = errors.New("password is too long")
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthUser is the public view of a user together with a freshly minted token.
type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}
