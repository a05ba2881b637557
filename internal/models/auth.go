package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims is the payload of a Supabase-issued access token.
type SupabaseClaims struct {
	Email        string                 `json:"email"`
	Role         string                 `json:"role"`
	SessionID    string                 `json:"session_id,omitempty"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

// Actor identifies who performs a service call and from where.
type Actor struct {
	UserID       string
	IsAdmin      bool
	IsSuperAdmin bool
	IPAddress    string
	UserAgent    string
}

// ActorFromUser builds an actor for the given user.
func ActorFromUser(u *User, ip, userAgent string) Actor {
	if u == nil {
		return Actor{IPAddress: ip, UserAgent: userAgent}
	}
	return Actor{UserID: u.ID, IsAdmin: u.IsAdmin, IsSuperAdmin: u.IsSuperAdmin, IPAddress: ip, UserAgent: userAgent}
}
