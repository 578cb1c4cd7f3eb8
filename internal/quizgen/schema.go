package quizgen

import "github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/llm"

// QuestionSchema is the strict shape of a single-question response. The
// answer is checked against A-D after label normalization, not here.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single multiple-choice question about a Wikipedia article",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The question prompt",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly 4 options prefixed A) to D)",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "Label of the correct option: A, B, C or D",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"description": "easy, medium or hard",
			},
			"section": map[string]any{
				"type":        "string",
				"description": "Section or article title the question is drawn from",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two lines justifying the answer",
			},
		},
		"required": []any{"question", "options", "answer"},
	},
}

// TopicsSchema is the strict shape of a topic-extraction response. Counts
// are enforced after excess entries are dropped.
var TopicsSchema = &llm.Schema{
	Name:        "related-topics",
	Description: "Topics related to a Wikipedia article with their Wikipedia URLs",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"wiki_links": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"topics", "wiki_links"},
	},
}
