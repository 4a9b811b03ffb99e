package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Cats":             "cats",
		"  Funny Cats  ":   "funny-cats",
		"cats & dogs":      "cats-dogs",
		"коты":             "коты",
		"snake_case--tag":  "snake-case-tag",
		"!!!":              "",
		"Мем дня 2026":     "мем-дня-2026",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
