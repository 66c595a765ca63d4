package extract_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeassist/internal/services/assist/domain"
	"codeassist/internal/services/assist/extract"
)

func TestParseGenerate(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantCode    string
		wantExplain string
	}{
		{
			name:        "single fenced block with prose",
			raw:         "Here is the function:\n```go\nfunc Add(a, b int) int { return a + b }\n```\nIt adds two ints.",
			wantCode:    "func Add(a, b int) int { return a + b }",
			wantExplain: "Here is the function:\nIt adds two ints.",
		},
		{
			name:     "fence only, no prose",
			raw:      "```\nx = 1\n```",
			wantCode: "x = 1",
		},
		{
			name:     "language hint on the marker",
			raw:      "```python\nprint('hi')\n```",
			wantCode: "print('hi')",
		},
		{
			name:     "first of several blocks wins",
			raw:      "```\nfirst\n```\nmiddle\n```\nsecond\n```",
			wantCode: "first",
			// middle prose survives
			wantExplain: "middle",
		},
		{
			name:     "unclosed fence runs to end of input",
			raw:      "```js\nconst a = 1;\nconst b = 2;",
			wantCode: "const a = 1;\nconst b = 2;",
		},
		{
			name:        "no fence falls through to prose",
			raw:         "Just an explanation, no code.",
			wantExplain: "Just an explanation, no code.",
		},
		{
			name:        "metadata echo lines dropped from prose",
			raw:         "Language: go\nFramework: chi\nActual explanation.",
			wantExplain: "Actual explanation.",
		},
		{
			name: "empty input yields empty result",
			raw:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract.Parse(tt.raw, domain.ActionGenerate)
			require.Equal(t, tt.wantCode, res.Code)
			require.Equal(t, tt.wantExplain, res.Explanation)
			require.Empty(t, res.Analysis)
			require.Empty(t, res.Suggestions)
		})
	}
}

func TestParseOptimize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantCode string
		wantSugg []string
	}{
		{
			name:     "dash bullets",
			raw:      "- a\n- b",
			wantSugg: []string{"a", "b"},
		},
		{
			name:     "star bullets",
			raw:      "* use a map\n* avoid copies",
			wantSugg: []string{"use a map", "avoid copies"},
		},
		{
			name:     "numbered list",
			raw:      "1. first fix\n2. second fix\n10. tenth fix",
			wantSugg: []string{"first fix", "second fix", "tenth fix"},
		},
		{
			name:     "bullets with surrounding prose and code",
			raw:      "Improved version:\n```go\nfor i := range xs {\n}\n```\nChanges:\n- dropped the index copy\n- hoisted the bound",
			wantCode: "for i := range xs {\n}",
			wantSugg: []string{"dropped the index copy", "hoisted the bound"},
		},
		{
			name:     "prose without list collapses to one suggestion",
			raw:      "  Inline the call and drop the defer.  ",
			wantSugg: []string{"Inline the call and drop the defer."},
		},
		{
			name: "empty input yields no suggestions",
			raw:  "",
		},
		{
			name:     "numbered marker needs the trailing space",
			raw:      "1.no space here",
			wantSugg: []string{"1.no space here"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract.Parse(tt.raw, domain.ActionOptimize)
			require.Equal(t, tt.wantCode, res.Code)
			require.Equal(t, tt.wantSugg, res.Suggestions)
		})
	}
}

func TestParseAnalyzeAndReview(t *testing.T) {
	tests := []struct {
		name         string
		action       domain.Action
		raw          string
		wantAnalysis string
		wantSugg     []string
		wantExplain  string
	}{
		{
			name:         "analysis keyword starts the findings",
			action:       domain.ActionAnalyze,
			raw:          "Preamble line.\nAnalysis:\nThe loop allocates per iteration.",
			wantAnalysis: "Analysis:\nThe loop allocates per iteration.",
		},
		{
			name:         "keyword match is case-insensitive",
			action:       domain.ActionAnalyze,
			raw:          "FINDINGS\nUnchecked error on line 3.",
			wantAnalysis: "FINDINGS\nUnchecked error on line 3.",
		},
		{
			name:         "review keyword set",
			action:       domain.ActionReview,
			raw:          "Some intro.\nFeedback:\n- rename the receiver",
			wantAnalysis: "Feedback:\n- rename the receiver",
			wantSugg:     []string{"rename the receiver"},
		},
		{
			name:         "assessment works for both actions",
			action:       domain.ActionReview,
			raw:          "Assessment: solid overall.",
			wantAnalysis: "Assessment: solid overall.",
		},
		{
			name:        "no keyword and no list falls back to explanation",
			action:      domain.ActionAnalyze,
			raw:         "Nothing structured here.",
			wantExplain: "Nothing structured here.",
		},
		{
			name:     "no keyword but bullets still collected",
			action:   domain.ActionAnalyze,
			raw:      "- tighten the lock scope",
			wantSugg: []string{"tighten the lock scope"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract.Parse(tt.raw, tt.action)
			require.Equal(t, tt.wantAnalysis, res.Analysis)
			require.Equal(t, tt.wantSugg, res.Suggestions)
			require.Equal(t, tt.wantExplain, res.Explanation)
			require.Empty(t, res.Code)
		})
	}
}

// any non-empty input must land in at least one field
func TestParseNeverDropsOutput(t *testing.T) {
	raws := []string{
		"plain text",
		"```\ncode\n```",
		"- bullet",
		"Analysis: x",
		"\n\nwhitespace padded\n",
	}
	actions := []domain.Action{
		domain.ActionGenerate, domain.ActionAnalyze,
		domain.ActionOptimize, domain.ActionReview,
	}
	for _, raw := range raws {
		for _, a := range actions {
			res := extract.Parse(raw, a)
			carried := res.Code != "" || res.Analysis != "" ||
				res.Explanation != "" || len(res.Suggestions) > 0
			require.True(t, carried, "action %s dropped %q", a, raw)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, a := range []domain.Action{
		domain.ActionGenerate, domain.ActionAnalyze,
		domain.ActionOptimize, domain.ActionReview,
	} {
		res := extract.Parse("", a)
		require.Equal(t, domain.ExecutionResult{}, res, "action %s", a)
	}
}
