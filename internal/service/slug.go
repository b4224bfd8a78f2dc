package service

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugBaseLen = 120

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lower-cases s, drops accents and joins ascii words with "-".
func Slugify(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if len(out) > maxSlugBaseLen {
		out = strings.TrimRight(out[:maxSlugBaseLen], "-")
	}
	return out
}

// uniqueSlug appends a random suffix so equal titles never collide.
func uniqueSlug(title string) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	base := Slugify(title)
	if base == "" {
		return "quiz-" + suffix
	}
	return base + "-" + suffix
}
