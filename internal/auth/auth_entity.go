package auth

const (
	RoleHR    = "HR"
	RoleAdmin = "ADMIN"

	// AdminSubject is the token subject of the shared admin credential.
	AdminSubject = "admin"
)

// Principal is the identity carried by an access token.
type Principal struct {
	Subject string
	Role    string
}
