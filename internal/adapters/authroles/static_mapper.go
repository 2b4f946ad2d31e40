package authroles

import (
	"strings"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
)

// DefaultNames maps role names the backend and older clients emit to ordinals.
// Keys are lower-case.
var DefaultNames = map[string]domainauth.Role{
	"user":           domainauth.RoleCitizen,
	"citizen":        domainauth.RoleCitizen,
	"representant":   domainauth.RoleRepresentative,
	"representative": domainauth.RoleRepresentative,
	"admin":          domainauth.RoleAdministrator,
	"administrator":  domainauth.RoleAdministrator,
}

// NameRoleMapper maps role names to ordinals by table lookup.
// Numeric roles pass through untouched, unknown names are returned as-is.
type NameRoleMapper struct {
	Names map[string]domainauth.Role
}

// NewNameRoleMapper returns a mapper over DefaultNames.
func NewNameRoleMapper() NameRoleMapper {
	return NameRoleMapper{Names: DefaultNames}
}

func (m NameRoleMapper) Normalize(role domainauth.RawRole) domainauth.RawRole {
	if !role.IsNamed() {
		return role
	}
	names := m.Names
	if names == nil {
		names = DefaultNames
	}
	if r, ok := names[strings.ToLower(strings.TrimSpace(role.Name()))]; ok {
		return domainauth.RoleOrdinal(int(r))
	}
	return role
}
