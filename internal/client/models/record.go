// Package models defines the canonical catalog record shape shared by the
// cache/sync engine, the durable store and the remote catalog client.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/pokedex/internal/common"
)

// StorageKeyPrefix is the durable-store key prefix for records.
// A record with ID 25 is stored under "record_25".
const StorageKeyPrefix = "record_"

// NullType is the implicit category assigned to records with no type tags
// when filtering by type.
const NullType = "Null"

// Name is the structured display name of a record. English is required;
// the other translations are optional.
type Name struct {
	English  string `json:"english"`
	Japanese string `json:"japanese,omitempty"`
	Chinese  string `json:"chinese,omitempty"`
	French   string `json:"french,omitempty"`
}

// Image holds the two image references of a record: the authoritative
// remote high-resolution source and the lazily populated local cache path.
type Image struct {
	Remote string `json:"remote"`
	Local  string `json:"local,omitempty"`
}

// Profile carries free-form descriptive fields. All fields are locally
// editable.
type Profile struct {
	Species string `json:"species,omitempty"`
	Height  string `json:"height,omitempty"`
	Weight  string `json:"weight,omitempty"`
	Ability string `json:"ability,omitempty"`
}

// Record is one catalog entry. ID is immutable once created and doubles as
// the durable-store key suffix and the blob filename stem.
type Record struct {
	ID          int64    `json:"id"`
	Name        Name     `json:"name"`
	Type        []string `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Profile     Profile  `json:"profile,omitempty"`
	Image       Image    `json:"image"`
}

// StorageKey returns the durable-store key for the record.
func (r *Record) StorageKey() string {
	return RecordKey(r.ID)
}

// RecordKey returns the durable-store key for the given record ID.
func RecordKey(id int64) string {
	return fmt.Sprintf("%s%d", StorageKeyPrefix, id)
}

// ImageFileName returns the canonical blob filename for the record.
func (r *Record) ImageFileName() string {
	return fmt.Sprintf("%d.png", r.ID)
}

// TypeTags returns the record's category tags, substituting the implicit
// Null tag when the record has none.
func (r *Record) TypeTags() []string {
	if len(r.Type) == 0 {
		return []string{NullType}
	}
	return r.Type
}

// HasType reports whether the record carries the given category tag,
// honouring the implicit Null tag for untyped records.
func (r *Record) HasType(tag string) bool {
	for _, t := range r.TypeTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate checks the required fields of a record. It is applied at the
// durable-store and remote-source boundaries so malformed input never
// reaches the engine.
func (r *Record) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("record id %d: %w", r.ID, common.ErrorInternal)
	}
	if r.Name.English == "" {
		return fmt.Errorf("record %d has no english name: %w", r.ID, common.ErrorInternal)
	}
	return nil
}

// Patch describes a partial update of a record. Nil fields are left
// untouched; non-nil fields replace the stored value wholesale.
type Patch struct {
	Name        *Name
	Type        *[]string
	Description *string
	Profile     *Profile
}

// Apply merges the patch into the record. The ID and image references are
// never patched; images move only through the image resolution policy.
func (r *Record) Apply(p Patch) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Profile != nil {
		r.Profile = *p.Profile
	}
}

// Encode serializes the record to its durable-store representation.
func (r *Record) Encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode record %d: %w", r.ID, err)
	}
	return string(b), nil
}

// Decode parses a durable-store value into a record and validates it.
// Malformed content is reported as ErrorNotFound so stale or corrupt
// entries surface as an absent record rather than a crash deeper in
// the engine.
func Decode(value string) (*Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(value), &r); err != nil {
		return nil, fmt.Errorf("malformed record: %v: %w", err, common.ErrorNotFound)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid record: %v: %w", err, common.ErrorNotFound)
	}
	return &r, nil
}
