package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Dani":            "dani",
		"Ştefan":          "stefan",
		"Ștefan Cel Mare": "stefan-cel-mare",
		"Müller":          "muller",
		"  Ana  Maria  ":  "ana-maria",
		"José":            "jose",
		"under_score":     "under-score",
		"x--y":            "x-y",
		"--":              "",
		"":                "",
		"42nd Street":     "42nd-street",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestFirstNameOf(t *testing.T) {
	assert.Equal(t, "Dani", FirstNameOf("Dani Ionescu"))
	assert.Equal(t, "Dani", FirstNameOf("  Dani  "))
	assert.Equal(t, "User", FirstNameOf(""))
	assert.Equal(t, "User", FirstNameOf("   "))
}
