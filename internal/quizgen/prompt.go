package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const questionSystemPrompt = `You are an expert educator writing multiple-choice quiz questions about Wikipedia articles.

Rules:
- Write EXACTLY one question.
- Provide exactly 4 options labelled "A) ", "B) ", "C) ", "D) ". Exactly one option is correct and the other three are plausible.
- "answer" is the label of the correct option: one of A, B, C, D.
- "difficulty" must equal the requested difficulty.
- The explanation is 1-2 lines and, when source text is given, quotes or paraphrases it.
- Return ONLY a JSON object, no markdown, with the keys: question, options, answer, difficulty, section, explanation.`

const topicsSystemPrompt = `You are an expert content analyst reading a Wikipedia article.

Rules:
- Identify the 5 most relevant topics covered or implied by the article content.
- Topics are concrete concepts, people, places or subjects someone reading this article would want to learn about next. Never metadata or generic categories.
- For each topic give its English Wikipedia URL, built by replacing spaces with underscores: https://en.wikipedia.org/wiki/Topic_name
- "wiki_links" is positionally paired with "topics".
- Return ONLY a JSON object, no markdown, with the keys: topics, wiki_links.`

// buildQuestionMessage is the user message for a slot generated from the
// article text. text is truncated to maxText characters.
func buildQuestionMessage(section, text string, difficulty Difficulty, maxText int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Section: %s\n", section)
	b.WriteString("Use ONLY the section text below.\n")
	b.WriteString("\nSection text:\n")
	b.WriteString(truncate(text, maxText))

	return b.String()
}

// buildFallbackMessage is the user message for a slot generated from the
// article title alone.
func buildFallbackMessage(title string, difficulty Difficulty) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Article title: %q\n", title)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Section: %s\n", title)
	fmt.Fprintf(&b, "The question must be factual and about %q.", title)

	return b.String()
}

// buildTopicsMessage is the user message for related-topic extraction.
func buildTopicsMessage(title, content string, maxContent int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Article title: %q\n", title)
	b.WriteString("\nArticle content (excerpt):\n")
	b.WriteString(truncate(content, maxContent))

	return b.String()
}

// truncate returns the first n characters of s. n <= 0 disables truncation.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
