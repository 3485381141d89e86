package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Main St", "main_st"},
		{"umlauts", "Bäckerei Müller", "baeckerei_mueller"},
		{"sharp s", "Straße", "strasse"},
		{"capital umlaut", "Öl Brötchen", "oel_broetchen"},
		{"hyphen", "Roggen-Misch", "roggen_misch"},
		{"underscore kept", "a_b", "a_b"},
		{"digits and punctuation dropped", "Torte 26cm!", "torte_cm"},
		{"accents outside the set dropped", "Crème", "crme"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, name := range []string{"Main St", "Bäckerei Müller", "Groß-Straße", "Weizen Brot"} {
		slug := Slugify(name)
		assert.Equal(t, slug, Slugify(slug), name)
	}
}
