// Package play is the terminal quiz player: it takes a Wikipedia URL,
// generates the quiz, walks through the questions with immediate feedback
// and submits the answers as an attempt.
package play

import (
	"context"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/router"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/screen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/components"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/layout"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/wiki"
)

// Service is the part of the quiz service the player needs.
type Service interface {
	Generate(ctx context.Context, url string) (*quiz.Result, error)
	Get(ctx context.Context, id int64) (*quiz.Result, error)
	Attempt(ctx context.Context, id int64, answers map[string]string) (*quiz.Score, error)
}

type phase int

const (
	phaseInput phase = iota
	phaseLoading
	phaseQuestion
	phaseFeedback
	phaseScoring
	phaseSummary
	phaseError
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// PlayScreen runs one quiz from URL entry to score.
type PlayScreen struct {
	ctx context.Context
	svc Service

	phase   phase
	input   components.TextInput
	url     string
	quizID  int64
	result  *quiz.Result
	index   int
	choice  components.MultiChoice
	answers map[string]string
	correct int
	score   *quiz.Score
	errMsg  string
	frame   int
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a player that asks for a URL, or starts generating at once
// when url is non-empty.
func New(ctx context.Context, svc Service, url string) *PlayScreen {
	s := &PlayScreen{
		ctx:   ctx,
		svc:   svc,
		input: components.NewTextInput("https://en.wikipedia.org/wiki/...", 512, validateURL),
	}
	if url != "" {
		s.url = url
		s.phase = phaseLoading
	}
	return s
}

// Open creates a player for a stored quiz.
func Open(ctx context.Context, svc Service, id int64) *PlayScreen {
	s := New(ctx, svc, "")
	s.quizID = id
	s.phase = phaseLoading
	return s
}

func validateURL(raw string) error {
	_, err := wiki.ValidateURL(raw)
	return err
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.phase == phaseLoading {
		return tea.Batch(s.load(), spinnerTick())
	}
	return s.input.Init()
}

func (s *PlayScreen) Title() string {
	if s.result != nil {
		return s.result.Title
	}
	return "New quiz"
}

// Status shows question progress, then the final score.
func (s *PlayScreen) Status() string {
	switch s.phase {
	case phaseQuestion, phaseFeedback:
		return "Question " + strconv.Itoa(s.index+1) + "/" + strconv.Itoa(len(s.result.Questions))
	case phaseSummary:
		return "Score " + strconv.Itoa(s.score.Score) + "/" + strconv.Itoa(s.score.Total)
	}
	return ""
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseInput:
		return []layout.KeyHint{{Key: "Enter", Description: "Generate"}, {Key: "Esc", Description: "Back"}}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "A-D", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
		}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case phaseSummary:
		return []layout.KeyHint{{Key: "N", Description: "New quiz"}, {Key: "Esc", Description: "Back"}}
	case phaseError:
		return []layout.KeyHint{{Key: "Enter", Description: "Try again"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)
	case scoredMsg:
		return s.handleScored(msg)
	case spinnerTickMsg:
		if s.phase != phaseLoading && s.phase != phaseScoring {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	if len(msg.Result.Questions) == 0 {
		s.phase = phaseError
		s.errMsg = "This quiz has no questions."
		return s, nil
	}
	s.result = msg.Result
	s.quizID = msg.Result.ID
	s.url = msg.Result.URL
	s.index = 0
	s.correct = 0
	s.answers = make(map[string]string, len(msg.Result.Questions))
	s.choice = components.NewMultiChoice(msg.Result.Questions[0])
	s.phase = phaseQuestion
	return s, nil
}

func (s *PlayScreen) handleScored(msg scoredMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	s.score = msg.Score
	s.phase = phaseSummary
	return s, nil
}

func (s *PlayScreen) fail(err error) {
	_, message := quiz.Categorize(err)
	s.phase = phaseError
	s.errMsg = message
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseInput:
		switch key {
		case "esc":
			return s, popScreen
		case "enter":
			if err := s.input.Submit(); err != nil {
				return s, nil
			}
			s.url = s.input.Value()
			s.phase = phaseLoading
			return s, tea.Batch(s.load(), spinnerTick())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseQuestion:
		if key == "esc" {
			return s, popScreen
		}
		s.choice, _ = s.choice.Update(msg)
		if s.choice.Submitted {
			s.answers[strconv.Itoa(s.index)] = s.choice.Answer()
			if s.choice.IsCorrect() {
				s.correct++
			}
			s.phase = phaseFeedback
		}
		return s, nil

	case phaseFeedback:
		s.index++
		if s.index < len(s.result.Questions) {
			s.choice = components.NewMultiChoice(s.result.Questions[s.index])
			s.phase = phaseQuestion
			return s, nil
		}
		s.phase = phaseScoring
		return s, tea.Batch(s.submit(), spinnerTick())

	case phaseSummary:
		switch key {
		case "n", "N":
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: New(s.ctx, s.svc, "")}
			}
		case "esc", "q":
			return s, popScreen
		}

	case phaseError:
		switch key {
		case "esc":
			return s, popScreen
		case "enter":
			s.errMsg = ""
			if s.result != nil {
				// Scoring failed; resubmit the same answers.
				s.phase = phaseScoring
				return s, tea.Batch(s.submit(), spinnerTick())
			}
			s.phase = phaseInput
			s.quizID = 0
			s.input.SetValue(s.url)
			return s, s.input.Init()
		}
	}
	return s, nil
}

func popScreen() tea.Msg {
	return router.PopScreenMsg{}
}

// load generates the quiz for the entered URL, or fetches a stored quiz.
func (s *PlayScreen) load() tea.Cmd {
	ctx, svc, url, id := s.ctx, s.svc, s.url, s.quizID
	return func() tea.Msg {
		var (
			res *quiz.Result
			err error
		)
		if id > 0 {
			res, err = svc.Get(ctx, id)
		} else {
			res, err = svc.Generate(ctx, url)
		}
		return quizReadyMsg{Result: res, Err: err}
	}
}

func (s *PlayScreen) submit() tea.Cmd {
	ctx, svc, id := s.ctx, s.svc, s.quizID
	answers := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	return func() tea.Msg {
		score, err := svc.Attempt(ctx, id, answers)
		return scoredMsg{Score: score, Err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
