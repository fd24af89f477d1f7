package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"homeboard/internal/authz"
	"homeboard/internal/domain"
)

// UserService handles account registration and credential exchange.
type UserService struct {
	users            domain.UserRepository
	audit            domain.AuditRepository
	issuer           *authz.Issuer
	productKeySecret []byte
}

// NewUserService creates a new UserService. productKeySecret signs the
// product keys that gate realtor signup.
func NewUserService(users domain.UserRepository, audit domain.AuditRepository, issuer *authz.Issuer, productKeySecret string) *UserService {
	return &UserService{
		users:            users,
		audit:            audit,
		issuer:           issuer,
		productKeySecret: []byte(productKeySecret),
	}
}

// GenerateProductKey derives the signup key that authorizes the given email
// address to register with the given role.
func GenerateProductKey(secret, email string, role domain.UserRole) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s:%s", email, role)
	return hex.EncodeToString(mac.Sum(nil))
}

// Signup registers an account and returns a signed bearer token for it.
// Realtor signup requires a product key issued for the same email address.
func (s *UserService) Signup(ctx context.Context, req *domain.SignupRequest) (string, *domain.User, error) {
	if req.Role == "" {
		req.Role = domain.RoleBuyer
	}
	if err := req.Validate(); err != nil {
		return "", nil, err
	}
	if req.Role == domain.RoleRealtor {
		want := GenerateProductKey(string(s.productKeySecret), req.Email, domain.RoleRealtor)
		if !hmac.Equal([]byte(want), []byte(req.ProductKey)) {
			return "", nil, domain.ErrAccessDenied("invalid product key for realtor signup")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			return "", nil, domain.ErrConflict("an account with email %s already exists", req.Email)
		}
		return "", nil, err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}
	s.logAudit(ctx, user.Email, "SIGNUP")
	return token, user, nil
}

// Signin exchanges an email/password pair for a signed bearer token. Unknown
// accounts and wrong passwords are indistinguishable to the caller.
func (s *UserService) Signin(ctx context.Context, req *domain.SigninRequest) (string, *domain.User, error) {
	if err := req.Validate(); err != nil {
		return "", nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return "", nil, domain.ErrUnauthenticated("invalid email or password")
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, domain.ErrUnauthenticated("invalid email or password")
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}
	s.logAudit(ctx, user.Email, "SIGNIN")
	return token, user, nil
}

// GetByID returns an account by id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) logAudit(ctx context.Context, email, action string) {
	_ = s.audit.Insert(ctx, &domain.AuditEntry{
		PrincipalName: email,
		Action:        action,
	})
}
