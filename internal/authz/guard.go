package authz

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"homeboard/internal/domain"
)

// Guard is the per-request authorization gate. It decodes the bearer
// credential, resolves the caller's Principal, and checks the principal's
// role against the operation's policy rule. The resolved Principal is
// returned by value for the handler to thread into the operation body; it is
// never stored in shared state.
type Guard struct {
	validator TokenValidator
	policy    Policy
}

// NewGuard creates a Guard from a token validator and a startup-built policy.
func NewGuard(validator TokenValidator, policy Policy) *Guard {
	return &Guard{validator: validator, policy: policy}
}

// Authorize gates an operation. Public operations return a nil Principal
// without touching the credential. For all other operations the credential is
// decoded and the role checked; any failure is terminal for the request and
// occurs before any business logic or persistence access.
func (g *Guard) Authorize(ctx context.Context, rawToken string, op Operation) (*domain.Principal, error) {
	// Unregistered operations require authentication with no role constraint.
	rule := g.policy[op]

	if rule.Public {
		return nil, nil
	}

	principal, err := g.resolve(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if !rule.Allows(principal.Role) {
		return nil, domain.ErrAccessDenied("role %s may not perform %s", principal.Role, op)
	}
	return principal, nil
}

// resolve decodes the credential into a Principal. Decode failures map to
// UnauthenticatedError with the failure class in the message.
func (g *Guard) resolve(ctx context.Context, rawToken string) (*domain.Principal, error) {
	if rawToken == "" {
		return nil, domain.ErrUnauthenticated("missing credential")
	}

	claims, err := g.validator.Validate(ctx, rawToken)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, domain.ErrUnauthenticated("credential expired")
		}
		return nil, domain.ErrUnauthenticated("invalid credential")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthenticated("invalid credential: malformed subject")
	}
	role, err := domain.ParseUserRole(claims.Role)
	if err != nil {
		return nil, domain.ErrUnauthenticated("invalid credential: missing role claim")
	}

	return &domain.Principal{
		ID:    id,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  role,
	}, nil
}

// BearerToken extracts the bearer token from a request's Authorization
// header. Returns an empty string when no bearer credential is present.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
