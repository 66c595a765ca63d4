package textfold

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "ascii passthrough", in: "analysis", want: "analysis"},
		{name: "case folding", in: "ANALYSIS", want: "analysis"},
		{name: "mixed case", in: "FeedBack", want: "feedback"},
		{name: "fullwidth to ascii", in: "ｒｅｖｉｅｗ", want: "review"},
		{name: "zero width joiner removed", in: "find‍ings", want: "findings"},
		{name: "bom removed", in: "\ufeffassessment", want: "assessment"},
		{name: "invalid utf8 dropped", in: "a\xffb", want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Fatalf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{name: "empty needle always matches", haystack: "x", needle: "", want: true},
		{name: "plain substring", haystack: "Code Analysis:", needle: "analysis", want: true},
		{name: "case insensitive", haystack: "FINDINGS BELOW", needle: "findings", want: true},
		{name: "fullwidth haystack", haystack: "ＦＥＥＤＢＡＣＫ", needle: "feedback", want: true},
		{name: "no match", haystack: "summary", needle: "analysis", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.haystack, tt.needle); got != tt.want {
				t.Fatalf("Contains(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestFoldIdempotent(t *testing.T) {
	inputs := []string{"Analysis", "ｒｅｖｉｅｗ", "find‍ings", "plain"}
	for _, in := range inputs {
		once := Fold(in)
		if twice := Fold(once); twice != once {
			t.Fatalf("Fold not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
