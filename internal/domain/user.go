package domain

import "time"

// UserRole is the coarse capability class of an account.
type UserRole string

const (
	RoleBuyer   UserRole = "BUYER"
	RoleRealtor UserRole = "REALTOR"
)

// ParseUserRole validates a role string against the closed enumeration.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleBuyer, RoleRealtor:
		return UserRole(s), nil
	default:
		return "", ErrValidation("unknown role %q", s)
	}
}

// User is a registered account.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

// Principal is the authenticated identity making a request. It is decoded
// fresh from the bearer credential on every request and never persisted.
type Principal struct {
	ID    int64
	Name  string
	Email string
	Role  UserRole
}

// SignupRequest holds parameters for registering a new account.
type SignupRequest struct {
	Name       string
	Email      string
	Phone      string
	Password   string
	Role       UserRole
	ProductKey string // required when Role is REALTOR
}

// Validate checks that the request is well-formed. It never mutates the
// request; an unset Role is defaulted by the signup service before validation.
func (r *SignupRequest) Validate() error {
	if r.Name == "" {
		return ErrValidation("name is required")
	}
	if r.Email == "" {
		return ErrValidation("email is required")
	}
	if len(r.Password) < 8 {
		return ErrValidation("password must be at least 8 characters")
	}
	if _, err := ParseUserRole(string(r.Role)); err != nil {
		return err
	}
	return nil
}

// SigninRequest holds parameters for exchanging credentials for a token.
type SigninRequest struct {
	Email    string
	Password string
}

// Validate checks that the request is well-formed.
func (r *SigninRequest) Validate() error {
	if r.Email == "" {
		return ErrValidation("email is required")
	}
	if r.Password == "" {
		return ErrValidation("password is required")
	}
	return nil
}
