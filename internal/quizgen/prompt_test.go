package quizgen

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, "hello"},
		{"héllo wörld", 4, "héll"},
		{"日本語テキスト", 3, "日本語"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.n)
		}
	}
}

func TestBuildQuestionMessage(t *testing.T) {
	msg := buildQuestionMessage("Section 3", "The Seine is a river.", Medium, 2500)

	for _, want := range []string{"Difficulty: medium", "Section: Section 3", "The Seine is a river."} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildFallbackMessage(t *testing.T) {
	msg := buildFallbackMessage("Alan Turing", Hard)

	if !strings.Contains(msg, `"Alan Turing"`) {
		t.Errorf("message missing title:\n%s", msg)
	}
	if !strings.Contains(msg, "Difficulty: hard") {
		t.Errorf("message missing difficulty:\n%s", msg)
	}
	if strings.Contains(msg, "Section text") {
		t.Error("fallback message must not ask for section text")
	}
}

func TestBuildTopicsMessage(t *testing.T) {
	content := strings.Repeat("x", 3000) + "OVERFLOW"
	msg := buildTopicsMessage("Paris", content, 3000)

	if !strings.Contains(msg, `"Paris"`) {
		t.Errorf("message missing title")
	}
	if strings.Contains(msg, "OVERFLOW") {
		t.Error("content was not truncated")
	}
}

func TestSystemPrompts(t *testing.T) {
	for _, label := range []string{`"A) "`, `"D) "`, "A, B, C, D", "JSON"} {
		if !strings.Contains(questionSystemPrompt, label) {
			t.Errorf("question prompt missing %q", label)
		}
	}
	if !strings.Contains(topicsSystemPrompt, "https://en.wikipedia.org/wiki/") {
		t.Error("topics prompt missing link format")
	}
}
