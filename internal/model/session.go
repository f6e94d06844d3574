package model

// Role values recognised by the reservation service.  The remote API
// embeds the role in the access token; the front end also records which
// login form was used so redirects stay role-appropriate.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Session is the client-held proof of authentication: the bearer token
// for the remote API together with the role it was issued for.  Token
// and Role are always set and cleared together; a session carrying only
// one of the two is invalid and is rejected by the store.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Valid reports whether the session carries both a token and a known role.
func (s Session) Valid() bool {
	return s.Token != "" && (s.Role == RoleClient || s.Role == RoleAdmin)
}

// IsAdmin reports whether the session was issued through the admin login.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
