// Package gitmoji inserts a gitmoji after the type prefix of a Conventional
// Commits subject line.
package gitmoji

import (
	"regexp"
	"sort"
	"strings"

	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
)

// table maps commit types to their gitmoji. It is never mutated.
var table = map[string]string{
	"feat":     "✨",  // new feature
	"fix":      "🐛",  // bug fix
	"docs":     "📝",  // documentation
	"style":    "💄",  // formatting, no code change
	"refactor": "♻️", // refactoring
	"test":     "✅",  // tests
	"chore":    "🧹",  // build process, tooling
	"ci":       "🤖",  // CI/CD
	"perf":     "⚡️", // performance
}

// subjectRegex matches "<type>(<scope>): <subject>" or "<type>: <subject>".
// The scope is greedy: it runs to the last ")" that is followed by a colon.
var subjectRegex = regexp.MustCompile(`^([a-z]+)(\(.*\))?:(.*)$`)

// Emoji returns the gitmoji for a commit type and whether the type is known.
func Emoji(commitType string) (string, bool) {
	e, ok := table[commitType]
	return e, ok
}

// Tags returns all known commit types in alphabetical order.
func Tags() []string {
	tags := make([]string, 0, len(table))
	for t := range table {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Annotate rebuilds the first line of message as "<type><scope>: <emoji> <subject>".
// Messages that do not match the Conventional Commits shape, or whose type has
// no gitmoji, are returned unchanged. It never fails: any internal error
// yields the original message.
func Annotate(message string) (annotated string) {
	defer func() {
		if r := recover(); r != nil {
			apperrors.Warn("gitmoji annotation failed: %v", r)
			annotated = message
		}
	}()

	first, rest, hasRest := strings.Cut(message, "\n")

	matches := subjectRegex.FindStringSubmatch(first)
	if matches == nil {
		return message
	}

	commitType, scope := matches[1], matches[2]
	emoji, ok := table[commitType]
	if !ok {
		return message
	}

	subject := strings.TrimSpace(matches[3])
	if strings.HasPrefix(subject, emoji) {
		return message
	}

	line := commitType + scope + ": " + emoji
	if subject != "" {
		line += " " + subject
	}

	if hasRest {
		return line + "\n" + rest
	}
	return line
}
