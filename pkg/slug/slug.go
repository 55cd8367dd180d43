// Package slug derives URL slugs from titles and picks a free variant
// when the base slug is already taken.
package slug

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxBaseLen bounds the base slug so suffixes still fit the column.
	MaxBaseLen = 200
	// FallbackBase is used when a title has no slug-able characters.
	FallbackBase = "campaign"
	// maxAttempts stops a runaway predicate from looping forever.
	maxAttempts = 10000
)

var (
	reDisallowed = regexp.MustCompile(`[^a-z0-9\s]`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// ExistsFunc reports whether a candidate slug is already owned by a live row.
type ExistsFunc func(candidate string) (bool, error)

// Slugify lower-cases the title, drops every character outside [a-z0-9\s]
// and joins the remaining words with single hyphens. Accented letters are
// dropped like any other symbol, so "Café" becomes "caf". The title is
// NFC-composed first so precomposed and decomposed accents slug alike.
// An all-symbolic title yields "".
func Slugify(title string) string {
	s := strings.ToLower(norm.NFC.String(title))
	s = reDisallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = reSpaces.ReplaceAllString(s, "-")

	if len(s) > MaxBaseLen {
		s = strings.Trim(s[:MaxBaseLen], "-")
	}
	return s
}

// Generate returns the base slug of title, or base-1, base-2, ... for the
// first candidate exists reports as free.
func Generate(title string, exists ExistsFunc) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = FallbackBase
	}

	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 1; i <= maxAttempts; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxAttempts)
}
