package slug

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Help Ana Walk Again", "help-ana-walk-again"},
		{"  Surgery   for\tBaby Joe!! ", "surgery-for-baby-joe"},
		{"Kidney-Transplant 2024", "kidneytransplant-2024"},
		{"Café Médical", "caf-mdical"},
		{"Cafe\u0301 Me\u0301dical", "caf-mdical"},
		{"100% Funded?", "100-funded"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugifyMatchesPattern(t *testing.T) {
	titles := []string{
		"A", "a b c", "Ünïcödé Tïtle", "tabs\tand\nnewlines", "emoji 🚑 ambulance",
		"--leading and trailing--", strings.Repeat("word ", 80), "Ωmega 7",
	}
	for _, title := range titles {
		s := Slugify(title)
		if s == "" {
			continue
		}
		if !slugPattern.MatchString(s) {
			t.Errorf("Slugify(%q) = %q does not match slug pattern", title, s)
		}
		if len(s) > MaxBaseLen {
			t.Errorf("Slugify(%q) length %d exceeds %d", title, len(s), MaxBaseLen)
		}
	}
}

func TestGenerateFreeBase(t *testing.T) {
	got, err := Generate("Heart Surgery", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "heart-surgery" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateAppendsSuffix(t *testing.T) {
	taken := map[string]bool{"heart-surgery": true}
	got, err := Generate("Heart Surgery", func(s string) (bool, error) { return taken[s], nil })
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "heart-surgery-1" {
		t.Errorf("got %q, want heart-surgery-1", got)
	}

	taken["heart-surgery-1"] = true
	taken["heart-surgery-2"] = true
	got, _ = Generate("Heart Surgery", func(s string) (bool, error) { return taken[s], nil })
	if got != "heart-surgery-3" {
		t.Errorf("got %q, want heart-surgery-3", got)
	}
}

func TestGenerateAllSymbolicTitle(t *testing.T) {
	got, err := Generate("???", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != FallbackBase {
		t.Errorf("got %q, want %q", got, FallbackBase)
	}
}

func TestGeneratePropagatesPredicateError(t *testing.T) {
	boom := errors.New("store down")
	if _, err := Generate("x", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Errorf("expected predicate error, got %v", err)
	}
}
