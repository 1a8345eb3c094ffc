// Package sanitize neutralizes free-form user text before it reaches the
// YAML-backed store or the chat renderer. All functions are pure and total.
package sanitize

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Characters with structural meaning in a YAML document. If any of them
// appears anywhere in the string, the value gets a leading space so the
// encoder emits it as a quoted scalar instead of a plain one.
const yamlStructural = ":{}[]&*#|>'\"%@`"

// Characters with special meaning in the chat platform's Markdown renderer
var markdownSpecialRe = regexp.MustCompile("([_*\\[\\]()~`>#+=|{}.!\\-])")

var titleCaser = cases.Title(language.Und)

// Text sanitizes user input: strips non-printable runes (newline and tab
// survive), trims surrounding whitespace, neutralizes YAML structural
// characters, optionally escapes Markdown metacharacters, and truncates to
// maxLength runes. maxLength <= 0 means unlimited.
func Text(text string, maxLength int, escapeMarkdown bool) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}
	text = strings.TrimSpace(b.String())

	// Scan the whole string, not just the first rune: a structural
	// character mid-scalar can still break the persisted document.
	if text != "" && strings.ContainsAny(text, yamlStructural) {
		text = " " + text
	}

	if escapeMarkdown {
		text = markdownSpecialRe.ReplaceAllString(text, `\$1`)
	}

	if maxLength > 0 {
		if runes := []rune(text); len(runes) > maxLength {
			text = string(runes[:maxLength])
		}
	}

	return text
}

// Title sanitizes and title-cases a card title
func Title(text string, maxLength int) string {
	return Text(titleCaser.String(strings.TrimSpace(text)), maxLength, false)
}

// Description sanitizes a description and capitalizes its first rune
func Description(text string, maxLength int) string {
	text = Text(text, maxLength, false)
	if text == "" {
		return ""
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

var validVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
	".flv":  true,
	".mpeg": true,
	".mpg":  true,
}

// ValidVideoFilename reports whether the filename carries a known video
// extension. Empty names and names without an extension pass; the platform
// has already validated the upload, this is an extra check.
func ValidVideoFilename(name string) bool {
	if name == "" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == "" || validVideoExtensions[ext]
}
