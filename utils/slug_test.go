package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"simple", "Resistor", "resistor"},
		{"spaces", "Ceramic Capacitor 100nF", "ceramic-capacitor-100nf"},
		{"turkish characters", "Direnç Çeşitleri", "direnc-cesitleri"},
		{"dotless i", "Işık Sensörü", "isik-sensoru"},
		{"capital dotted i", "İstanbul Üretimi", "istanbul-uretimi"},
		{"punctuation collapses", "LM317 - Voltage / Regulator!!", "lm317-voltage-regulator"},
		{"leading and trailing junk", "  --NE555--  ", "ne555"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.in))
		})
	}
}

func TestDeriveSlug(t *testing.T) {
	assert.Equal(t, "metal-film-resistor-1k-r-1k-0603", DeriveSlug("Metal Film Resistor 1K", "R-1K-0603"))
	assert.Equal(t, "guc-kaynagi-psu123", DeriveSlug("Güç Kaynağı", "PSU123"))
	assert.Equal(t, "bare-name", DeriveSlug("Bare Name", ""))
}
