package identity

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Role names as stored in seguridad.rol.
const (
	RoleSuperadmin = "SUPERADMIN"
	RoleHRAdmin    = "ADMIN_RRHH"
	RoleManager    = "MANAGER"
	RoleAuditor    = "AUDITOR"
	RoleEmployee   = "EMPLEADO"
)

// Identity is the authenticated caller as carried in the access token.
type Identity struct {
	UserID       string
	CompanyID    string
	EmployeeID   *string
	Roles        []string
	IsSuperadmin bool
}

// HasRole reports membership in a named role. The superadmin flag implies
// SUPERADMIN regardless of explicit memberships.
func (i Identity) HasRole(name string) bool {
	if name == RoleSuperadmin && i.IsSuperadmin {
		return true
	}
	for _, r := range i.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// FromContext builds the caller identity from the verified JWT claims.
func FromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Identity{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	ident := Identity{
		UserID:    userID,
		CompanyID: companyID,
	}

	if empID, ok := claims["empleado_id"].(string); ok && empID != "" {
		ident.EmployeeID = &empID
	}

	if superadmin, ok := claims["is_superadmin"].(bool); ok {
		ident.IsSuperadmin = superadmin
	}

	// jwx yields []interface{} for parsed tokens and []string for
	// locally built ones.
	switch raw := claims["roles"].(type) {
	case []interface{}:
		for _, r := range raw {
			if s, ok := r.(string); ok {
				ident.Roles = append(ident.Roles, s)
			}
		}
	case []string:
		ident.Roles = append(ident.Roles, raw...)
	}

	return ident, nil
}
