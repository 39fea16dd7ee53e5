// Package httpapi exposes the catalog over HTTP: a public paginated
// listing and a JWT-protected admin surface for mutations and image
// upload links.
package httpapi

import "github.com/dmitrijs2005/pokedex/internal/server/models"

// wireName mirrors the JSON name object clients consume.
type wireName struct {
	English  string `json:"english"`
	Japanese string `json:"japanese,omitempty"`
	Chinese  string `json:"chinese,omitempty"`
	French   string `json:"french,omitempty"`
}

type wireProfile struct {
	Species string `json:"species,omitempty"`
	Height  string `json:"height,omitempty"`
	Weight  string `json:"weight,omitempty"`
	Ability string `json:"ability,omitempty"`
}

type wireImage struct {
	Remote string `json:"remote"`
}

// wireRecord is the JSON shape of one catalog entry on the wire.
type wireRecord struct {
	ID          int64       `json:"id"`
	Name        wireName    `json:"name"`
	Type        []string    `json:"type,omitempty"`
	Description string      `json:"description,omitempty"`
	Profile     wireProfile `json:"profile,omitempty"`
	Image       wireImage   `json:"image"`
}

func toWire(rec *models.Record) wireRecord {
	return wireRecord{
		ID:          rec.ID,
		Name:        wireName(rec.Name),
		Type:        rec.Type,
		Description: rec.Description,
		Profile:     wireProfile(rec.Profile),
		Image:       wireImage{Remote: rec.ImageRemote},
	}
}

func fromWire(w *wireRecord) models.Record {
	return models.Record{
		ID:          w.ID,
		Name:        models.Name(w.Name),
		Type:        w.Type,
		Description: w.Description,
		Profile:     models.Profile(w.Profile),
		ImageRemote: w.Image.Remote,
	}
}
