package domain

import "time"

// Claims is the verified identity payload derived from a session token.
// Only the Claims Reader constructs these, and only after signature and
// expiry verification; the Role is always in canonical form.
type Claims struct {
	SubjectID string
	Email     string
	Name      string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}
