package users_enums

type ProjectRole string

const (
	ProjectRoleDeveloper ProjectRole = "DEVELOPER"
	ProjectRoleManager   ProjectRole = "MANAGER"
)

// IsValid validates the ProjectRole
func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleDeveloper, ProjectRoleManager:
		return true
	default:
		return false
	}
}
