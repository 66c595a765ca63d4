// Package extract turns the assistant's free-form output into a structured
// result. Parse is pure and total: any input, including the empty string,
// yields a valid result and never an error.
//
// Delimiter rules
//   - A fence marker is a line whose trimmed form starts with ``` and it may
//     carry a language hint after the backticks. Markers toggle fence state;
//     an unclosed fence runs to end of input
//   - A suggestion line is a line whose trimmed form starts with "- ", "* ",
//     or digits followed by ". "
package extract

import (
	"strings"

	"codeassist/internal/core/textfold"
	"codeassist/internal/services/assist/domain"
)

const fenceMarker = "```"

// keyword sets locating the start of prose findings, matched fold-insensitively
var (
	analyzeKeywords = []string{"analysis", "assessment", "findings"}
	reviewKeywords  = []string{"review", "feedback", "assessment"}
)

// Parse extracts the structured result for the given action from raw text
func Parse(raw string, action domain.Action) domain.ExecutionResult {
	var res domain.ExecutionResult

	lines := strings.Split(raw, "\n")
	blocks, inFence := fencedBlocks(lines)

	switch action {
	case domain.ActionGenerate:
		if len(blocks) > 0 {
			res.Code = strings.TrimSpace(blocks[0])
		}
		res.Explanation = proseOf(lines, inFence)

	case domain.ActionOptimize:
		if len(blocks) > 0 {
			res.Code = strings.TrimSpace(blocks[0])
		}
		res.Suggestions = suggestionLines(lines)
		if len(res.Suggestions) == 0 && strings.TrimSpace(raw) != "" {
			res.Suggestions = []string{strings.TrimSpace(raw)}
		}

	case domain.ActionAnalyze, domain.ActionReview:
		keys := analyzeKeywords
		if action == domain.ActionReview {
			keys = reviewKeywords
		}
		if idx := keywordIndex(lines, keys); idx >= 0 {
			res.Analysis = strings.TrimSpace(strings.Join(lines[idx:], "\n"))
		}
		res.Suggestions = suggestionLines(lines)
	}

	// fallback invariant: something always carries the output
	if res.Code == "" && res.Analysis == "" && res.Explanation == "" && len(res.Suggestions) == 0 {
		res.Explanation = raw
	}
	return res
}

// fencedBlocks returns the fenced block contents in order of appearance and a
// per-line flag marking fence markers and fenced content
func fencedBlocks(lines []string) (blocks []string, inFence []bool) {
	inFence = make([]bool, len(lines))
	var cur []string
	open := false
	for i, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), fenceMarker) {
			inFence[i] = true
			if open {
				blocks = append(blocks, strings.Join(cur, "\n"))
				cur = nil
			}
			open = !open
			continue
		}
		if open {
			inFence[i] = true
			cur = append(cur, ln)
		}
	}
	if open {
		// unclosed fence runs to end of input
		blocks = append(blocks, strings.Join(cur, "\n"))
	}
	return blocks, inFence
}

// suggestionLines collects bullet and numbered list items with markers stripped
func suggestionLines(lines []string) []string {
	var out []string
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		switch {
		case strings.HasPrefix(t, "- "):
			out = append(out, strings.TrimSpace(t[2:]))
		case strings.HasPrefix(t, "* "):
			out = append(out, strings.TrimSpace(t[2:]))
		default:
			if rest, ok := numberedRest(t); ok {
				out = append(out, rest)
			}
		}
	}
	return out
}

// numberedRest strips a "1. " style marker, reporting whether one was present
func numberedRest(t string) (string, bool) {
	i := 0
	for i < len(t) && t[i] >= '0' && t[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(t) || t[i] != '.' || t[i+1] != ' ' {
		return "", false
	}
	return strings.TrimSpace(t[i+2:]), true
}

// keywordIndex returns the first line containing any of keys, fold-insensitive
func keywordIndex(lines []string, keys []string) int {
	for i, ln := range lines {
		for _, k := range keys {
			if textfold.Contains(ln, k) {
				return i
			}
		}
	}
	return -1
}

// proseOf joins the non-fence, non-metadata lines back together
func proseOf(lines []string, inFence []bool) string {
	var out []string
	for i, ln := range lines {
		if inFence[i] || isMetadataLine(ln) {
			continue
		}
		out = append(out, ln)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// isMetadataLine matches echo-back of the prompt's metadata lines
func isMetadataLine(ln string) bool {
	t := strings.ToLower(strings.TrimSpace(ln))
	return strings.HasPrefix(t, "language:") || strings.HasPrefix(t, "framework:")
}
