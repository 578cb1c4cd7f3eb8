package quizgen

import (
	"strings"
	"testing"
)

func validQuestion() *Question {
	return &Question{
		Question:    "Which river flows through Paris?",
		Options:     []string{"A) Seine", "B) Thames", "C) Danube", "D) Tiber"},
		Answer:      "A",
		Difficulty:  Easy,
		Section:     "Geography",
		Explanation: "The Seine flows through Paris.",
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(q *Question)
		validator Validator
		wantErr   bool
	}{
		{"structural ok", func(q *Question) {}, &StructuralValidator{}, false},
		{"empty question", func(q *Question) { q.Question = "" }, &StructuralValidator{}, true},
		{"blank question", func(q *Question) { q.Question = "  \n" }, &StructuralValidator{}, true},
		{"long question accepted", func(q *Question) { q.Question = strings.Repeat("q", 1001) }, &StructuralValidator{}, false},
		{"long non-ASCII explanation accepted", func(q *Question) { q.Explanation = strings.Repeat("é", 2500) }, &StructuralValidator{}, false},
		{"options ok", func(q *Question) {}, &OptionsValidator{}, false},
		{"unlabelled options ok", func(q *Question) { q.Options = []string{"Seine", "Thames", "Danube", "Tiber"} }, &OptionsValidator{}, false},
		{"five options", func(q *Question) { q.Options = append(q.Options, "E) Nile") }, &OptionsValidator{}, true},
		{"blank option", func(q *Question) { q.Options[2] = "C) " }, &OptionsValidator{}, true},
		{"case-insensitive duplicate", func(q *Question) { q.Options[3] = "D) seine" }, &OptionsValidator{}, true},
		{"answer ok", func(q *Question) { q.Answer = "D" }, &AnswerValidator{}, false},
		{"answer lowercase rejected", func(q *Question) { q.Answer = "d" }, &AnswerValidator{}, true},
		{"answer empty", func(q *Question) { q.Answer = "" }, &AnswerValidator{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := tt.validator.Validate(q)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Validator != tt.validator.Name() {
				t.Errorf("error validator = %q, want %q", err.Validator, tt.validator.Name())
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := map[string]string{
		"A":         "A",
		"b":         "B",
		"  c  ":     "C",
		"D)":        "D",
		"A. Seine":  "A",
		"b: Thames": "B",
		"C Danube":  "C",
		"E":         "E",
		"Seine":     "SEINE",
	}
	for in, want := range tests {
		if got := NormalizeLabel(in); got != want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultConfigValidators(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Validators) != 3 {
		t.Fatalf("expected 3 default validators, got %d", len(cfg.Validators))
	}
	if cfg.SlotAttempts != 3 || cfg.TopicAttempts != 3 {
		t.Errorf("attempts = %d/%d, want 3/3", cfg.SlotAttempts, cfg.TopicAttempts)
	}
	if cfg.MinTextLength != 500 {
		t.Errorf("MinTextLength = %d, want 500", cfg.MinTextLength)
	}
}
