package auth

// Roles conocidos.
const (
	RoleDeployer = "deployer"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Roles  []string
}

func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
