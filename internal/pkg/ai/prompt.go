package ai

import (
	"bytes"
	"text/template"
)

// DefaultSystemPrompt frames every request sent to a backend.
const DefaultSystemPrompt = `You are an expert software engineer who writes clear git commit messages and pull request descriptions.

Rules:
1. Use the Conventional Commits format: <type>(<scope>): <subject>
2. Types: feat, fix, docs, style, refactor, test, chore, perf, ci, build, revert
3. Use the imperative mood and present tense
4. Follow the requested output format exactly, without extra commentary`

// DefaultCommitPromptTemplate asks for a single conventional commit message.
const DefaultCommitPromptTemplate = `Generate a concise git commit message in the conventional commit format for the following diff:

` + "```diff" + `
{{.Diff}}
` + "```" + `

Commit message:`

// DefaultPRPromptTemplate asks for a labeled title and description.
const DefaultPRPromptTemplate = `Generate a Pull Request title and description for the following changes.

{{if .Template}}Use this PR template as a base:
---TEMPLATE START---
{{.Template}}
---TEMPLATE END---

{{end}}Apply the following diff to generate the content:
` + "```diff" + `
{{.Diff}}
` + "```" + `

Format the output as follows:
PR Title: [Generated PR Title]
PR Description:
[Generated PR Description based on diff and template if provided]`

// PromptData contains the data used to render the user prompt templates.
type PromptData struct {
	Diff     string
	Template string
}

// PromptBuilder renders the requests sent to a backend.
type PromptBuilder struct {
	SystemPrompt string
	commitTmpl   *template.Template
	prTmpl       *template.Template
}

// NewPromptBuilder creates a PromptBuilder with the default prompts.
func NewPromptBuilder() *PromptBuilder {
	pb, err := NewPromptBuilderWithCustom("", "", "")
	if err != nil {
		// The defaults are constants; a parse failure is a programming error.
		panic(err)
	}
	return pb
}

// NewPromptBuilderWithCustom creates a PromptBuilder with custom prompts.
// Empty arguments fall back to the defaults.
func NewPromptBuilderWithCustom(systemPrompt, commitPrompt, prPrompt string) (*PromptBuilder, error) {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	if commitPrompt == "" {
		commitPrompt = DefaultCommitPromptTemplate
	}
	if prPrompt == "" {
		prPrompt = DefaultPRPromptTemplate
	}

	commitTmpl, err := template.New("commitPrompt").Parse(commitPrompt)
	if err != nil {
		return nil, err
	}
	prTmpl, err := template.New("prPrompt").Parse(prPrompt)
	if err != nil {
		return nil, err
	}

	return &PromptBuilder{
		SystemPrompt: systemPrompt,
		commitTmpl:   commitTmpl,
		prTmpl:       prTmpl,
	}, nil
}

// CommitPrompt renders the commit message request for diff.
func (pb *PromptBuilder) CommitPrompt(diff string) (*Prompt, error) {
	user, err := render(pb.commitTmpl, &PromptData{Diff: diff})
	if err != nil {
		return nil, err
	}
	return &Prompt{System: pb.SystemPrompt, User: user, MaxTokens: CommitMaxTokens}, nil
}

// PRPrompt renders the pull request request for diff. An empty template is omitted.
func (pb *PromptBuilder) PRPrompt(diff, prTemplate string) (*Prompt, error) {
	user, err := render(pb.prTmpl, &PromptData{Diff: diff, Template: prTemplate})
	if err != nil {
		return nil, err
	}
	return &Prompt{System: pb.SystemPrompt, User: user, MaxTokens: PRMaxTokens}, nil
}

func render(tmpl *template.Template, data *PromptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
