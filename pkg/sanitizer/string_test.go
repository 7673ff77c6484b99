package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  Jane Doe  ", want: "Jane Doe"},
		{name: "multiple spaces between words", input: "Jane    Doe", want: "Jane Doe"},
		{name: "tabs and newlines", input: "Jane\t\nDoe", want: "Jane Doe"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   \t\n  ", want: ""},
		{name: "control characters dropped", input: "Jane\x00\x07 Doe", want: "Jane Doe"},
		{name: "preserve special characters", input: " Zoë & Søren ", want: "Zoë & Søren"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := TrimAndNormalize(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeVisitorName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "Anonymous"},
		{input: "   ", want: "Anonymous"},
		{input: "\x01", want: "Anonymous"},
		{input: "  Ada  Lovelace ", want: "Ada Lovelace"},
	}
	for _, tt := range tests {
		if got := NormalizeVisitorName(tt.input); got != tt.want {
			t.Errorf("NormalizeVisitorName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ada@Example.COM "); got != "ada@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
	if got := NormalizeEmail(""); got != "" {
		t.Errorf("empty e-mail should stay empty, got %q", got)
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	if got := NormalizeIdentifier("  Owner-A "); got != "Owner-A" {
		t.Errorf("NormalizeIdentifier = %q", got)
	}
}
