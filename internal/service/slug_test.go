package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ulangan Harian 1", "ulangan-harian-1"},
		{"  Matemática: Álgebra & Geometría!  ", "matematica-algebra-geometria"},
		{"---", ""},
		{"Bahasa_Indonesia--Bab 2", "bahasa-indonesia-bab-2"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}

	assert.LessOrEqual(t, len(Slugify(strings.Repeat("panjang ", 40))), maxSlugBaseLen)
}

func TestUniqueSlug(t *testing.T) {
	a, b := uniqueSlug("Kuis IPA"), uniqueSlug("Kuis IPA")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "kuis-ipa-"))
	assert.True(t, strings.HasPrefix(uniqueSlug("???"), "quiz-"))
}
