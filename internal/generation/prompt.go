package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed templates/word_prompt.tmpl
var defaultPromptTemplate string

// Prompt renders word-generation prompts from a template.
type Prompt struct {
	tmpl *template.Template
}

// NewPrompt parses the built-in template, or the file at path when path is
// not empty.
func NewPrompt(path string) (*Prompt, error) {
	text := defaultPromptTemplate
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v", ErrInvalidConfig, path, err)
		}
		text = string(content)
	}

	tmpl, err := template.New("word").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return &Prompt{tmpl: tmpl}, nil
}

// Render produces the prompt text for req.
func (p *Prompt) Render(req Request) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// FieldDescriptions returns the per-field descriptions used in structured
// response schemas.
func FieldDescriptions(req Request) map[string]string {
	return map[string]string{
		"word":            fmt.Sprintf("A single %s word appropriate for the %s CEFR level.", req.Language, req.Level),
		"translation":     "A concise English translation of the word.",
		"exampleSentence": fmt.Sprintf("A simple example sentence in %s using the word.", req.Language),
	}
}
