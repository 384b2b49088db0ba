package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/2beens/gymtracker/pkg"
)

var ErrUserNotFound = errors.New("user not found")

// User is the profile record created on first successful login.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

//go:generate mockgen -source=$GOFILE -destination=user_mocks_test.go -package=auth

// UserStore is implemented by both storage adapters.
type UserStore interface {
	GetUser(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user User) (*User, error)
}

// NormalizeUsername trims and lower-cases a login name.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NewUser builds the record for a first login: display name is the
// capitalized username, email is synthetic.
func NewUser(username string, now time.Time) User {
	username = NormalizeUsername(username)
	return User{
		Username:  username,
		FullName:  pkg.Capitalize(username),
		Email:     username + "@gym.local",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
