package quizgen

// Difficulty is the target difficulty of a question slot.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Curriculum is the fixed slot order of every quiz: two easy, two medium,
// two hard.
var Curriculum = [...]Difficulty{Easy, Easy, Medium, Medium, Hard, Hard}

// QuizSize is the number of questions in a complete quiz.
const QuizSize = len(Curriculum)

// TopicCount is the number of related topics and links a non-degraded
// extraction returns.
const TopicCount = 5

// PromptVersion identifies the prompt templates below. Stored with every quiz.
const PromptVersion = "v1"

// Labels are the option labels in display order.
var Labels = [...]string{"A", "B", "C", "D"}

// Question is one multiple-choice question. The JSON shape is the stored and
// served representation.
type Question struct {
	// Question is the prompt text.
	Question string `json:"question"`

	// Options holds exactly four choices, conventionally prefixed "A) ".."D) ".
	Options []string `json:"options"`

	// Answer is the label of the correct option, one of A-D.
	Answer string `json:"answer"`

	Difficulty  Difficulty `json:"difficulty"`
	Section     string     `json:"section"`
	Explanation string     `json:"explanation"`
}

// RelatedTopics pairs topic names with Wikipedia links by position.
// Either both lists hold TopicCount entries or both are empty.
type RelatedTopics struct {
	Topics []string `json:"related_topics"`
	Links  []string `json:"related_links"`
}

// Degraded reports whether extraction failed and the lists are empty.
func (r RelatedTopics) Degraded() bool {
	return len(r.Topics) == 0
}

// emptyTopics is the degraded result. Lists are non-nil so they encode as [].
func emptyTopics() RelatedTopics {
	return RelatedTopics{Topics: []string{}, Links: []string{}}
}

// PromptKind selects a prompt template and response schema.
type PromptKind string

const (
	KindQuestion         PromptKind = "single-question"
	KindQuestionFallback PromptKind = "single-question-fallback"
	KindTopics           PromptKind = "topic-extraction"
)

// Params holds the template parameters. Which fields are read depends on
// the PromptKind.
type Params struct {
	Section    string
	Text       string
	Title      string
	Content    string
	Difficulty Difficulty
}

// Result is the parsed response of a single Complete call. Exactly one of
// Question and Topics is set.
type Result struct {
	Kind     PromptKind
	Question *Question
	Topics   *RelatedTopics
}

// Choices returns the option texts with their "A) " style labels removed.
func (q Question) Choices() []string {
	out := make([]string, len(q.Options))
	for i, opt := range q.Options {
		out[i] = optionBody(opt)
	}
	return out
}

// AnswerIndex returns the position of the correct option, or -1 when the
// answer is not a known label.
func (q Question) AnswerIndex() int {
	answer := NormalizeLabel(q.Answer)
	for i, l := range Labels {
		if l == answer {
			return i
		}
	}
	return -1
}
