package runner

import (
	"fmt"
	"strings"

	"codeassist/internal/services/assist/domain"
)

// instruction is the action-specific first line of the assembled prompt
func instruction(a domain.Action) string {
	switch a {
	case domain.ActionGenerate:
		return "Generate code for the following request. Return the code in a fenced code block."
	case domain.ActionAnalyze:
		return "Analyze the following code. Start your findings with an Analysis section."
	case domain.ActionOptimize:
		return "Optimize the following code. List each improvement as a bullet point."
	case domain.ActionReview:
		return "Review the following code and provide feedback."
	default:
		return "Help with the following request."
	}
}

// BuildPrompt assembles the single text fed to the tool's stdin:
// instruction line, optional metadata lines, the user prompt, then trailing
// directives implied by the request options
func BuildPrompt(req domain.ExecutionRequest) string {
	var b strings.Builder
	b.WriteString(instruction(req.Action))
	b.WriteString("\n")

	if req.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", req.Language)
	}
	if req.Framework != "" {
		fmt.Fprintf(&b, "Framework: %s\n", req.Framework)
	}

	b.WriteString("\n")
	b.WriteString(req.Prompt)
	b.WriteString("\n")

	if o := req.Options; o != nil {
		var extra []string
		if o.IncludeTests {
			extra = append(extra, "Include unit tests.")
		}
		if o.IncludeComments {
			extra = append(extra, "Include explanatory comments.")
		}
		switch o.CodeStyle {
		case domain.StyleModern:
			extra = append(extra, "Prefer modern, idiomatic style.")
		case domain.StyleLegacy:
			extra = append(extra, "Prefer conservative, widely compatible style.")
		}
		if o.MaxTokens > 0 {
			extra = append(extra, fmt.Sprintf("Keep the response under %d tokens.", o.MaxTokens))
		}
		if len(extra) > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Join(extra, "\n"))
			b.WriteString("\n")
		}
	}

	return b.String()
}
