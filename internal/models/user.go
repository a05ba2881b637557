package models

import "time"

// User mirrors the application users table keyed by the Supabase auth uid.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	Username     *string    `db:"username" json:"username,omitempty"`
	AvatarURL    *string    `db:"avatar_url" json:"avatarUrl,omitempty"`
	IsAdmin      bool       `db:"is_admin" json:"isAdmin"`
	IsSuperAdmin bool       `db:"is_super_admin" json:"isSuperAdmin"`
	IsBanned     bool       `db:"is_banned" json:"isBanned"`
	BannedReason *string    `db:"banned_reason" json:"bannedReason,omitempty"`
	LastActiveAt *time.Time `db:"last_active_at" json:"lastActiveAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// HasAdminAccess reports whether the user may open the admin panel.
func (u *User) HasAdminAccess() bool {
	return u != nil && (u.IsAdmin || u.IsSuperAdmin)
}

// UserSummary is the public projection embedded in other payloads.
type UserSummary struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Username  *string `db:"username" json:"username,omitempty"`
	AvatarURL *string `db:"avatar_url" json:"avatarUrl,omitempty"`
}
