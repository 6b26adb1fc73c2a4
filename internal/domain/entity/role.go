package entity

import "slices"

// Role represents the type of role a user can have in the system. Roles are
// a closed enumeration; screen and stage permissions come from the
// capability table below instead of ad hoc string matching.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleDispatcher  Role = "dispatcher"
	RoleDriver      Role = "driver"
	RoleWarehouse   Role = "warehouse"
	RoleBilling     Role = "billing"
	RoleCollections Role = "collections"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDispatcher, RoleDriver, RoleWarehouse, RoleBilling, RoleCollections:
		return true
	default:
		return false
	}
}

// stageCapabilities maps each role to the dispatch stages it may mark done.
// RoleAdmin may set every stage.
var stageCapabilities = map[Role][]DispatchStage{
	RoleDispatcher:  {StageAdminAssistant},
	RoleDriver:      {StageDelivery},
	RoleWarehouse:   {StageWarehouse},
	RoleBilling:     {StageBilling},
	RoleCollections: {StageCollections},
}

// CanSetStage reports whether the role may update the given dispatch stage.
func (r Role) CanSetStage(stage DispatchStage) bool {
	if r == RoleAdmin {
		return stage.IsValid()
	}

	return slices.Contains(stageCapabilities[r], stage)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
