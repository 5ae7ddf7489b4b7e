package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserEmailEmpty   = errors.New("email is required")
	ErrUserEmailInvalid = errors.New("email is not valid")
	ErrUserRoleInvalid  = errors.New("role must be customer or agent")
)

// Role distinguishes portal customers from bond origination agents.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
)

// User is a portal account, provisioned on first login from the identity
// provider's claims.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Auth0ID       string     `json:"-"`
	Email         string     `json:"email"`
	FirstName     *string    `json:"firstName,omitempty"`
	LastName      *string    `json:"lastName,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Role          Role       `json:"role"`
	EmailVerified bool       `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
}

func (u *User) Validate() error {
	email := strings.TrimSpace(u.Email)
	if email == "" {
		return ErrUserEmailEmpty
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return ErrUserEmailInvalid
	}
	if u.Role != RoleCustomer && u.Role != RoleAgent {
		return ErrUserRoleInvalid
	}
	return nil
}

// FullName joins the optional name parts for display and email greetings.
func (u *User) FullName() string {
	parts := make([]string, 0, 2)
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) == 0 {
		return u.Email
	}
	return strings.Join(parts, " ")
}

type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	GetByAuth0ID(auth0ID string) (*User, error)
	CreateOrGetByAuth0ID(auth0ID, email string) (*User, error)
	Update(user *User) (*User, error)
	MarkEmailVerified(id uuid.UUID) error
}
