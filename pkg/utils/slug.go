package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.German)

var transliterations = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// Slugify derives the persisted slug of a display name. The slug filter runs
// raw query input through the same function, so a slug written on create is
// always reachable by an exact match on read.
//
// Steps: lowercase, drop everything except a-z, ä ö ü ß, '-', '_' and space,
// map space and '-' to '_', then transliterate the umlauts and ß.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range lower.String(name) {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
			b.WriteRune(r)
		case r == 'ä', r == 'ö', r == 'ü', r == 'ß':
			b.WriteRune(r)
		case r == ' ', r == '-':
			b.WriteByte('_')
		}
	}
	return transliterations.Replace(b.String())
}
