package entities

// Role is the single access level a principal acts under.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleReadOnly      Role = "readonly"
	RoleClinician     Role = "clinician"
)

// Principal is an authenticated actor as resolved by the identity collaborator.
// Role is derived from Identity by the resolver and never stored.
type Principal struct {
	ID          string `json:"id"`
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}
