package ai

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: the rendered prompt always carries the diff verbatim and the format instruction.
func TestPromptDiffInclusion_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(42)

	properties := gopter.NewProperties(parameters)

	properties.Property("diff is embedded between the delimiters", prop.ForAll(
		func(diff string) bool {
			result, err := NewPromptTemplate().Render(PromptData{Diff: diff})
			if err != nil {
				t.Logf("Render failed: %v", err)
				return false
			}
			return strings.Contains(result, "--- diff start ---\n"+diff+"\n--- diff end ---")
		},
		gen.AnyString(),
	))

	properties.Property("format instruction is always present", prop.ForAll(
		func(diff, language string) bool {
			result, err := NewPromptTemplate().Render(PromptData{Diff: diff, Language: language})
			if err != nil {
				return false
			}
			return strings.Contains(result, "<type>(<scope>): <subject>")
		},
		gen.AnyString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
