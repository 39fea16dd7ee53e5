// Package models defines the server-side database row shapes.
package models

// Name is the structured display name stored as jsonb.
type Name struct {
	English  string `json:"english"`
	Japanese string `json:"japanese,omitempty"`
	Chinese  string `json:"chinese,omitempty"`
	French   string `json:"french,omitempty"`
}

// Profile carries the descriptive fields stored as jsonb.
type Profile struct {
	Species string `json:"species,omitempty"`
	Height  string `json:"height,omitempty"`
	Weight  string `json:"weight,omitempty"`
	Ability string `json:"ability,omitempty"`
}

// Record is one catalog row. ImageRemote holds the authoritative image
// URL; clients maintain their own local copies.
type Record struct {
	ID          int64
	Name        Name
	Type        []string
	Description string
	Profile     Profile
	ImageRemote string
}
