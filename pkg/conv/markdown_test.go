package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Inertia is resistance to change in motion.",
			expected: "Inertia is resistance to change in motion.\n",
		},
		{
			name:     "bold text",
			input:    "**Newton**",
			expected: "<strong>Newton</strong>\n",
		},
		{
			name:     "italic text",
			input:    "*mass*",
			expected: "<em>mass</em>\n",
		},
		{
			name:     "inline code",
			input:    "`F = ma`",
			expected: "<code>F = ma</code>\n",
		},
		{
			name:     "code block with language",
			input:    "```go\nfunc main() {}\n```",
			expected: "<pre><code class=\"language-go\">func main() {}\n</code></pre>\n",
		},
		{
			name:     "header tags stripped",
			input:    "# Physics",
			expected: "Physics\n",
		},
		{
			name:     "script tags sanitized",
			input:    "<script>alert('xss')</script>",
			expected: "\n",
		},
		{
			name:     "link keeps href only",
			input:    "[wiki](https://example.com)",
			expected: "<a href=\"https://example.com\">wiki</a>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToTelegramHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitMessage(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		got := SplitMessage("hello", 10)
		if len(got) != 1 || got[0] != "hello" {
			t.Fatalf("unexpected chunks: %q", got)
		}
	})

	t.Run("prefers newline boundary", func(t *testing.T) {
		text := "aaaaaaa\nbbbbbbbbbb"
		got := SplitMessage(text, 10)
		if len(got) != 2 || got[0] != "aaaaaaa" || got[1] != "bbbbbbbbbb" {
			t.Fatalf("unexpected chunks: %q", got)
		}
	})

	t.Run("hard cut without newline", func(t *testing.T) {
		text := strings.Repeat("x", 25)
		got := SplitMessage(text, 10)
		if len(got) != 3 {
			t.Fatalf("expected 3 chunks, got %d: %q", len(got), got)
		}
		for _, c := range got {
			if len(c) > 10 {
				t.Errorf("chunk too long: %d", len(c))
			}
		}
	})
}
