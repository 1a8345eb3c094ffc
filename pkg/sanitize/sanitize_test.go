package sanitize

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestTextRemovesControlCharacters tests that non-printable characters are
// stripped while interior newlines and tabs survive
func TestTextRemovesControlCharacters(t *testing.T) {
	got := Text("abc\x00de\x07f", 0, false)
	if got != "abcdef" {
		t.Errorf("expected %q, got %q", "abcdef", got)
	}

	got = Text("line one\nline\ttwo", 0, false)
	if got != "line one\nline\ttwo" {
		t.Errorf("expected newline and tab to survive, got %q", got)
	}
}

// TestTextNeutralizesStructuralCharactersAnywhere tests that a YAML
// structural character anywhere in the string triggers neutralizing,
// not only in the first position
func TestTextNeutralizesStructuralCharactersAnywhere(t *testing.T) {
	for _, input := range []string{":dangerous", "mid#dle", "tail&"} {
		got := Text(input, 0, false)
		if !strings.HasPrefix(got, " ") {
			t.Errorf("expected %q to be neutralized, got %q", input, got)
		}
	}

	if got := Text("plain text", 0, false); got != "plain text" {
		t.Errorf("expected plain text untouched, got %q", got)
	}
}

// TestTextRoundTripsThroughYAML tests that a sanitized value survives a
// persist/reload cycle as a literal text value, not a structural token
func TestTextRoundTripsThroughYAML(t *testing.T) {
	sanitized := Text(":dangerous", 0, false)

	data, err := yaml.Marshal(map[string]string{"value": sanitized})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var reloaded map[string]string
	if err := yaml.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if reloaded["value"] != sanitized {
		t.Errorf("round trip changed value: wrote %q, read %q", sanitized, reloaded["value"])
	}
}

// TestTextEscapesMarkdownWhenRequested tests the optional presentation
// markup escaping
func TestTextEscapesMarkdownWhenRequested(t *testing.T) {
	got := Text("a_b.c!", 0, true)
	if got != `a\_b\.c\!` {
		t.Errorf("expected %q, got %q", `a\_b\.c\!`, got)
	}

	// Without the flag the metacharacters pass through
	got = Text("a_b.c!", 0, false)
	if got != "a_b.c!" {
		t.Errorf("expected %q, got %q", "a_b.c!", got)
	}
}

// TestTextTruncatesToExactLength tests that a 300-character input capped at
// 200 yields exactly 200 characters
func TestTextTruncatesToExactLength(t *testing.T) {
	input := strings.Repeat("a", 300)
	got := Text(input, 200, false)
	if len([]rune(got)) != 200 {
		t.Errorf("expected exactly 200 characters, got %d", len([]rune(got)))
	}
}

// TestTitleFormatsAndCaps tests title-casing with the length cap
func TestTitleFormatsAndCaps(t *testing.T) {
	if got := Title("  black lotus  ", 100); got != "Black Lotus" {
		t.Errorf("expected %q, got %q", "Black Lotus", got)
	}
}

// TestDescriptionCapitalizesFirstRune tests description formatting
func TestDescriptionCapitalizesFirstRune(t *testing.T) {
	if got := Description("mint condition", 500); got != "Mint condition" {
		t.Errorf("expected %q, got %q", "Mint condition", got)
	}
	if got := Description("", 500); got != "" {
		t.Errorf("expected empty output for empty input, got %q", got)
	}
}

// TestValidVideoFilename tests the extension whitelist
func TestValidVideoFilename(t *testing.T) {
	cases := map[string]bool{
		"clip.mp4":  true,
		"CLIP.MOV":  true,
		"demo.webm": true,
		"doc.pdf":   false,
		"":          true,
		"noext":     true,
	}
	for name, want := range cases {
		if got := ValidVideoFilename(name); got != want {
			t.Errorf("ValidVideoFilename(%q) = %t, want %t", name, got, want)
		}
	}
}
