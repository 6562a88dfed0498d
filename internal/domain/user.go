package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     *string   `json:"last_name"`
	Phone        *string   `json:"phone,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName joins the name parts, falling back to the email when both are blank.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != nil {
		name = name + " " + *u.LastName
	}
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return u.Email
}

// SplitName breaks a full name into a first token and the remaining tokens.
// An empty name falls back to the email as the first name.
func SplitName(name, email string) (string, *string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return strings.TrimSpace(email), nil
	}
	if len(fields) == 1 {
		return fields[0], nil
	}
	last := strings.Join(fields[1:], " ")
	return fields[0], &last
}

// Admin is a back-office account that reviews bookings.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
