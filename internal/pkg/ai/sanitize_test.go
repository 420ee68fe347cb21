package ai

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plaintext fence", "```plaintext\nfix: 修正\n```", "fix: 修正"},
		{"json fence", "```json\nfeat: add api\n```", "feat: add api"},
		{"javascript fence", "```javascript\nfix: handler\n```", "fix: handler"},
		{"typescript fence", "```typescript\nrefactor: types\n```", "refactor: types"},
		{"uppercase tag", "```JSON\nfix: x\n```", "fix: x"},
		{"capitalized tag", "```Plaintext\nfeat: y\n```", "feat: y"},
		{"mixed case tag", "```TypeScript\nrefactor: z\n```", "refactor: z"},
		{"bare fence", "```\nchore: bump deps\n```", "chore: bump deps"},
		{"inline fences", "```fix: inline```", "fix: inline"},
		{"surrounding whitespace", "\n\n  docs: readme  \n", "docs: readme"},
		{"no fence", "feat(cli): add flag", "feat(cli): add flag"},
		{"unknown tag kept", "```rust\nfix: x\n```", "rust\nfix: x"},
		{"tag needs word boundary", "```gopher", "gopher"},
		{"language word later is kept", "```\nfix: text handling\n```", "fix: text handling"},
		{"only fences", "``````", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func genFenceTag() gopter.Gen {
	return gen.OneConstOf("", "plaintext", "json", "JSON", "javascript", "TypeScript", "go", "text", "rust")
}

func TestSanitize_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("idempotent", prop.ForAll(
		func(s string) bool {
			once := Sanitize(s)
			return Sanitize(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("idempotent on fence-heavy input", prop.ForAll(
		func(tag, body, pad string) bool {
			s := pad + "```" + tag + body + "``" + "```" + tag + "`" + pad
			once := Sanitize(s)
			return Sanitize(once) == once
		},
		genFenceTag(), gen.AlphaString(), gen.OneConstOf("", " ", "\n", "`"),
	))

	properties.Property("identity on trimmed text without backticks", prop.ForAll(
		func(s string) bool {
			clean := strings.TrimSpace(strings.ReplaceAll(s, "`", ""))
			return Sanitize(clean) == clean
		},
		gen.AnyString(),
	))

	properties.Property("output never contains a fence", prop.ForAll(
		func(tag, body string) bool {
			out := Sanitize("```" + tag + "\n" + body + "\n```")
			return !strings.Contains(out, "```") && out == strings.TrimSpace(out)
		},
		genFenceTag(), gen.AlphaString(),
	))

	properties.TestingRun(t)
}
