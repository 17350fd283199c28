package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is what kind of account the user has on the marketplace
type Role string

const (
	RoleAdmin      Role = "admin"      // platform administrator
	RoleInstructor Role = "instructor" // course author
	RoleStudent    Role = "student"    // learner
)

// Valid reports whether the role is one the marketplace knows about
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// Identity represents the signed-in user as the marketplace sees them
type Identity struct {
	ID uuid.UUID `json:"id"` // unique identifier

	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"` // display name
	Role  Role   `json:"role" validate:"required,oneof=admin instructor student"`

	Avatar string `json:"avatar,omitempty"` // optional avatar reference

	// the bearer credential travels embedded in the persisted identity,
	// same shape the marketplace hands back on login
	Token string `json:"token,omitempty"`
}

// String provides a string representation of the identity
// This is useful for logging and debugging (the token is deliberately left out)
func (i *Identity) String() string {
	return fmt.Sprintf("Identity(ID=%s, Email=%s, Role=%s)", i.ID, i.Email, i.Role)
}

// AuthPayload is what the marketplace returns from login and signup
type AuthPayload struct {
	Token string   `json:"token" validate:"required"`
	User  Identity `json:"user" validate:"required"`
}

// Credentials is what we send to the login endpoint
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput is what we send to the signup endpoint
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}
