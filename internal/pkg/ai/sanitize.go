package ai

import (
	"regexp"
	"strings"
)

// fencePattern matches a code fence marker and an optional language tag right
// after it. Tags match in any case.
var fencePattern = regexp.MustCompile("```(?i:(?:plaintext|text|txt|json|javascript|typescript|js|ts|go|python|bash|shell|sh|diff|markdown|md|yaml|git|commit)\\b)?")

// Sanitize removes code fence markdown from a model reply and trims surrounding whitespace.
func Sanitize(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}
