package authz

import "homeboard/internal/domain"

// Operation identifies a protected operation for policy lookup.
type Operation string

const (
	OpListHomes     Operation = "homes.list"
	OpGetHome       Operation = "homes.get"
	OpCreateHome    Operation = "homes.create"
	OpUpdateHome    Operation = "homes.update"
	OpDeleteHome    Operation = "homes.delete"
	OpInquire       Operation = "homes.inquire"
	OpListInquiries Operation = "homes.inquiries.list"
	OpWhoAmI        Operation = "me.get"
	OpListAudit     Operation = "audit.list"
)

// Rule declares who may invoke an operation. Public rules skip credential
// decoding entirely. A non-public rule with no roles admits any authenticated
// principal regardless of role.
type Rule struct {
	Public bool
	Roles  []domain.UserRole
}

// Allows reports whether the rule admits the given role.
func (r Rule) Allows(role domain.UserRole) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Policy maps each operation to its access rule. Built once at startup and
// injected into the guard; read-only during request handling.
type Policy map[Operation]Rule

// DefaultPolicy returns the full route policy for the service. Every routed
// operation is registered explicitly; a lookup miss in the guard falls back
// to authenticated-any rather than open access.
func DefaultPolicy() Policy {
	return Policy{
		OpListHomes:     {Public: true},
		OpGetHome:       {Public: true},
		OpCreateHome:    {Roles: []domain.UserRole{domain.RoleRealtor}},
		OpUpdateHome:    {Roles: []domain.UserRole{domain.RoleRealtor}},
		OpDeleteHome:    {Roles: []domain.UserRole{domain.RoleRealtor}},
		OpInquire:       {Roles: []domain.UserRole{domain.RoleBuyer}},
		OpListInquiries: {Roles: []domain.UserRole{domain.RoleRealtor}},
		OpWhoAmI:        {},
		OpListAudit:     {},
	}
}
