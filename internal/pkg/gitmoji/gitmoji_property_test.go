package gitmoji

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genKnownType() gopter.Gen {
	return gen.OneConstOf("feat", "fix", "docs", "style", "refactor", "test", "chore", "ci", "perf")
}

// genUnknownType generates lowercase tokens that are not in the table.
func genUnknownType() gopter.Gen {
	return gen.AlphaString().Map(strings.ToLower).SuchThat(func(s string) bool {
		_, known := table[s]
		return s != "" && !known
	})
}

func genScope() gopter.Gen {
	return gen.OneGenOf(
		gen.Const(""),
		gen.Identifier().Map(func(s string) string {
			if len(s) > 20 {
				s = s[:20]
			}
			return "(" + s + ")"
		}),
	)
}

func genSubject() gopter.Gen {
	return gen.Identifier().Map(func(s string) string {
		if len(s) > 50 {
			return s[:50]
		}
		return s
	})
}

func genPadding() gopter.Gen {
	return gen.OneConstOf("", " ", "  ", "\t")
}

func TestProperty_KnownTypesGetTheirEmoji(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("emoji is inserted before the trimmed subject", prop.ForAll(
		func(commitType, scope, pad, subject string) bool {
			msg := commitType + scope + ":" + pad + subject
			want := commitType + scope + ": " + table[commitType] + " " + subject
			return Annotate(msg) == want
		},
		genKnownType(), genScope(), genPadding(), genSubject(),
	))

	properties.Property("type and scope are preserved verbatim", prop.ForAll(
		func(commitType, scope, subject string) bool {
			out := Annotate(commitType + scope + ": " + subject)
			return strings.HasPrefix(out, commitType+scope+": ")
		},
		genKnownType(), genScope(), genSubject(),
	))

	properties.TestingRun(t)
}

func TestProperty_IdentityOutsideTheTable(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("unknown types are left unchanged", prop.ForAll(
		func(commitType, scope, subject string) bool {
			msg := commitType + scope + ": " + subject
			return Annotate(msg) == msg
		},
		genUnknownType(), genScope(), genSubject(),
	))

	properties.Property("messages without a colon are left unchanged", prop.ForAll(
		func(s string) bool {
			msg := strings.ReplaceAll(s, ":", "")
			return Annotate(msg) == msg
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestProperty_NeverPanics(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("arbitrary input returns without panicking", prop.ForAll(
		func(s string) (ok bool) {
			defer func() {
				if recover() != nil {
					ok = false
				}
			}()
			_ = Annotate(s)
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
