package utils

import "strings"

var turkishReplacer = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "I", "i",
	"İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

// Slugify lowercases, transliterates Turkish characters and collapses
// everything else to single hyphens.
func Slugify(s string) string {
	s = turkishReplacer.Replace(s)
	s = strings.ToLower(s)

	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// DeriveSlug builds a product slug from its name and part number. Called
// explicitly before persistence; slugs are never derived in a save hook.
func DeriveSlug(name, partNumber string) string {
	base := Slugify(name)
	pn := Slugify(partNumber)
	if pn == "" {
		return base
	}
	return base + "-" + pn
}
