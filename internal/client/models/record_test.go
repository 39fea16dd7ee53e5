package models

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKey(t *testing.T) {
	r := &Record{ID: 25, Name: Name{English: "Pikachu"}}
	assert.Equal(t, "record_25", r.StorageKey())
	assert.Equal(t, "record_7", RecordKey(7))
	assert.Equal(t, "25.png", r.ImageFileName())
}

func TestTypeTags_ImplicitNull(t *testing.T) {
	r := &Record{ID: 1, Name: Name{English: "MissingNo"}}
	assert.Equal(t, []string{NullType}, r.TypeTags())
	assert.True(t, r.HasType(NullType))

	r.Type = []string{"Electric"}
	assert.Equal(t, []string{"Electric"}, r.TypeTags())
	assert.True(t, r.HasType("Electric"))
	assert.False(t, r.HasType(NullType))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{"valid", Record{ID: 1, Name: Name{English: "Bulbasaur"}}, false},
		{"zero id", Record{Name: Name{English: "x"}}, true},
		{"negative id", Record{ID: -3, Name: Name{English: "x"}}, true},
		{"missing name", Record{ID: 5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApply_PatchesOnlyProvidedFields(t *testing.T) {
	r := Record{
		ID:          4,
		Name:        Name{English: "Charmander"},
		Type:        []string{"Fire"},
		Description: "Lizard",
		Image:       Image{Remote: "http://img/4.png", Local: "/images/4.png"},
	}

	newName := Name{English: "Charmander EX"}
	r.Apply(Patch{Name: &newName})

	assert.Equal(t, "Charmander EX", r.Name.English)
	assert.Equal(t, []string{"Fire"}, r.Type)
	assert.Equal(t, "Lizard", r.Description)
	assert.Equal(t, "/images/4.png", r.Image.Local, "image must not be patched")

	desc := "Fire lizard"
	newType := []string{"Fire", "Dragon"}
	r.Apply(Patch{Description: &desc, Type: &newType})
	assert.Equal(t, "Fire lizard", r.Description)
	assert.Equal(t, []string{"Fire", "Dragon"}, r.Type)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	r := &Record{
		ID:   25,
		Name: Name{English: "Pikachu", Japanese: "ピカチュウ"},
		Type: []string{"Electric"},
		Profile: Profile{
			Species: "Mouse Pokémon",
			Height:  "0.4 m",
			Weight:  "6 kg",
			Ability: "Static",
		},
		Image: Image{Remote: "http://img/25.png", Local: "/images/25.png"},
	}

	encoded, err := r.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
}

func TestDecode_MalformedIsNotFound(t *testing.T) {
	_, err := Decode("{not json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	// structurally valid JSON failing validation behaves the same
	_, err = Decode(`{"id":0}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}
