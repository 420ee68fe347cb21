package ai

import (
	"bytes"
	"text/template"
)

// DefaultLanguage is used when PromptData.Language is empty.
const DefaultLanguage = "Japanese"

// DefaultPromptTemplate asks for a single Conventional Commit line.
const DefaultPromptTemplate = `Analyze the following git diff and write a commit message in Conventional Commits format, on a single line.
The format is "<type>(<scope>): <subject>".

Choose the most fitting type from the changes, such as "fix:", "feat:", "test:", "docs:", "refactor:", "style:" or "chore:".
Write the subject concisely in {{.Language}}.

--- diff start ---
{{.Diff}}
--- diff end ---
`

// PromptTemplate renders the instruction sent with the diff.
type PromptTemplate struct {
	text string
	tmpl *template.Template
}

// PromptData contains the data used to render the prompt template.
type PromptData struct {
	Diff     string
	Language string
}

// NewPromptTemplate creates a new PromptTemplate with the default prompt.
func NewPromptTemplate() *PromptTemplate {
	return &PromptTemplate{text: DefaultPromptTemplate}
}

// Render renders the prompt with the diff embedded verbatim.
func (pt *PromptTemplate) Render(data PromptData) (string, error) {
	if data.Language == "" {
		data.Language = DefaultLanguage
	}

	// Parse the template if not already parsed
	if pt.tmpl == nil {
		tmpl, err := template.New("prompt").Parse(pt.text)
		if err != nil {
			return "", err
		}
		pt.tmpl = tmpl
	}

	var buf bytes.Buffer
	if err := pt.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
