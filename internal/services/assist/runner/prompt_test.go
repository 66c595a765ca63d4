package runner_test

import (
	"strings"
	"testing"

	"codeassist/internal/services/assist/domain"
	"codeassist/internal/services/assist/runner"
)

func TestBuildPromptMinimal(t *testing.T) {
	got := runner.BuildPrompt(domain.ExecutionRequest{
		Action: domain.ActionGenerate,
		Prompt: "write a fizzbuzz",
	})

	want := "Generate code for the following request. Return the code in a fenced code block.\n" +
		"\n" +
		"write a fizzbuzz\n"
	if got != want {
		t.Fatalf("BuildPrompt = %q, want %q", got, want)
	}
}

func TestBuildPromptMetadataLines(t *testing.T) {
	got := runner.BuildPrompt(domain.ExecutionRequest{
		Action:    domain.ActionAnalyze,
		Prompt:    "func main() {}",
		Language:  "go",
		Framework: "chi",
	})

	lines := strings.Split(got, "\n")
	if lines[0] != "Analyze the following code. Start your findings with an Analysis section." {
		t.Fatalf("instruction line = %q", lines[0])
	}
	if lines[1] != "Language: go" || lines[2] != "Framework: chi" {
		t.Fatalf("metadata lines = %q, %q", lines[1], lines[2])
	}
	if lines[3] != "" || lines[4] != "func main() {}" {
		t.Fatalf("prompt placement wrong: %q", got)
	}
}

func TestBuildPromptOptionsTrailer(t *testing.T) {
	got := runner.BuildPrompt(domain.ExecutionRequest{
		Action: domain.ActionGenerate,
		Prompt: "a queue",
		Options: &domain.RequestOptions{
			IncludeTests:    true,
			IncludeComments: true,
			CodeStyle:       domain.StyleModern,
			MaxTokens:       2048,
		},
	})

	for _, want := range []string{
		"Include unit tests.",
		"Include explanatory comments.",
		"Prefer modern, idiomatic style.",
		"Keep the response under 2048 tokens.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildPromptLegacyStyle(t *testing.T) {
	got := runner.BuildPrompt(domain.ExecutionRequest{
		Action:  domain.ActionOptimize,
		Prompt:  "x",
		Options: &domain.RequestOptions{CodeStyle: domain.StyleLegacy},
	})
	if !strings.Contains(got, "Prefer conservative, widely compatible style.") {
		t.Fatalf("legacy style directive missing:\n%s", got)
	}
}

func TestBuildPromptEmptyOptionsAddNoTrailer(t *testing.T) {
	bare := runner.BuildPrompt(domain.ExecutionRequest{
		Action: domain.ActionReview,
		Prompt: "x",
	})
	withEmpty := runner.BuildPrompt(domain.ExecutionRequest{
		Action:  domain.ActionReview,
		Prompt:  "x",
		Options: &domain.RequestOptions{},
	})
	if bare != withEmpty {
		t.Fatalf("empty options changed the prompt:\n%q\nvs\n%q", bare, withEmpty)
	}
}

func TestBuildPromptInstructionPerAction(t *testing.T) {
	tests := []struct {
		action domain.Action
		want   string
	}{
		{domain.ActionGenerate, "Generate code"},
		{domain.ActionAnalyze, "Analyze the following code"},
		{domain.ActionOptimize, "Optimize the following code"},
		{domain.ActionReview, "Review the following code"},
		{domain.Action("unknown"), "Help with the following request."},
	}
	for _, tt := range tests {
		got := runner.BuildPrompt(domain.ExecutionRequest{Action: tt.action, Prompt: "p"})
		if !strings.HasPrefix(got, tt.want) {
			t.Fatalf("action %s: prompt = %q, want prefix %q", tt.action, got, tt.want)
		}
	}
}
