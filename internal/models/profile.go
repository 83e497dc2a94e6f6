package models

import "time"

// Profile identifies the child playing. Games only read it.
type Profile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AvatarRef  string `json:"avatarRef"`
	ColorTheme string `json:"colorTheme"`
}

// StoredProfile is a profile row including the parent contact used for
// session summaries
type StoredProfile struct {
	Profile
	ParentEmail string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
