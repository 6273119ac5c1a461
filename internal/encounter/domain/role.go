package domain

import (
	"fmt"
	"strings"
)

// Role classifies the combat function of an enemy archetype.
type Role int

const (
	RoleUnspecified Role = iota
	RoleBrute
	RoleTank
	RoleSkirmisher
	RoleInvoker
	RoleSupport
	RoleCaster
)

func (r Role) String() string {
	switch r {
	case RoleUnspecified:
		return "unspecified"
	case RoleBrute:
		return "brute"
	case RoleTank:
		return "tank"
	case RoleSkirmisher:
		return "skirmisher"
	case RoleInvoker:
		return "invoker"
	case RoleSupport:
		return "support"
	case RoleCaster:
		return "caster"
	default:
		return "unknown"
	}
}

// ParseRole converts a role name to a Role. Matching is case-insensitive.
func ParseRole(name string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unspecified":
		return RoleUnspecified, nil
	case "brute":
		return RoleBrute, nil
	case "tank":
		return RoleTank, nil
	case "skirmisher":
		return RoleSkirmisher, nil
	case "invoker":
		return RoleInvoker, nil
	case "support":
		return RoleSupport, nil
	case "caster":
		return RoleCaster, nil
	default:
		return RoleUnspecified, fmt.Errorf("unknown role %q", name)
	}
}

// IsBruteFamily reports whether the role is a frontline melee role.
func (r Role) IsBruteFamily() bool {
	return r == RoleBrute || r == RoleTank
}

// IsInvokerFamily reports whether the role is a ritual or support role.
func (r Role) IsInvokerFamily() bool {
	return r == RoleInvoker || r == RoleSupport
}

// IsCasterFamily reports whether the role channels skill-based damage.
func (r Role) IsCasterFamily() bool {
	return r == RoleCaster || r == RoleInvoker
}
