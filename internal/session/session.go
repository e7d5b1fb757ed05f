package session

import (
	"context"
	"strings"
	"time"

	"github.com/abhisek/viva/internal/assessment"
	"github.com/abhisek/viva/internal/structured"
)

// Session owns one assessment from subject entry to the finished record.
// Operations are only legal in their state; question generation strictly
// precedes scoring. A fatal provider error in either generation phase
// moves the session to StateAborted with no partial record.
type Session struct {
	state State
	gen   *structured.Generator
	clock func() time.Time

	subject  string
	topic    string
	question *assessment.QuestionRubric
	response string
	score    *assessment.ScoreResult
	record   *assessment.Record

	// usedFallback is set when either generation served a default
	// document; it clears the record's json_validated flag.
	usedFallback bool
}

// New creates a session awaiting subject and topic. A nil clock means
// time.Now.
func New(gen *structured.Generator, clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		state: StateAwaitingSubjectTopic,
		gen:   gen,
		clock: clock,
	}
}

// Begin accepts the subject and topic and moves to question generation.
// Blank input returns *ErrEmptyInput and leaves the state unchanged.
func (s *Session) Begin(subject, topic string) error {
	if s.state != StateAwaitingSubjectTopic {
		return &ErrBadState{State: s.state, Op: "begin"}
	}

	subject = strings.TrimSpace(subject)
	topic = strings.TrimSpace(topic)
	if subject == "" {
		return &ErrEmptyInput{Field: "subject"}
	}
	if topic == "" {
		return &ErrEmptyInput{Field: "topic"}
	}

	s.subject = subject
	s.topic = topic
	s.state = StateGeneratingQuestion
	return nil
}

// GenerateQuestion produces the question and rubric for the chosen
// subject and topic. A provider failure aborts the session and surfaces
// the error.
func (s *Session) GenerateQuestion(ctx context.Context) (*assessment.QuestionRubric, error) {
	if s.state != StateGeneratingQuestion {
		return nil, &ErrBadState{State: s.state, Op: "generate question"}
	}

	qr, result, err := assessment.GenerateQuestion(ctx, s.gen, s.subject, s.topic)
	if err != nil {
		s.state = StateAborted
		return nil, err
	}
	if result.UsedFallback {
		s.usedFallback = true
	}

	s.question = qr
	s.state = StateAwaitingResponse
	return qr, nil
}

// SubmitResponse accepts the student's answer and moves to scoring.
// Blank input returns *ErrEmptyInput and leaves the state unchanged.
func (s *Session) SubmitResponse(response string) error {
	if s.state != StateAwaitingResponse {
		return &ErrBadState{State: s.state, Op: "submit response"}
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return &ErrEmptyInput{Field: "response"}
	}

	s.response = response
	s.state = StateScoring
	return nil
}

// Score grades the submitted response against the rubric, assembles the
// record, and completes the session. A provider failure aborts.
func (s *Session) Score(ctx context.Context) (*assessment.ScoreResult, error) {
	if s.state != StateScoring {
		return nil, &ErrBadState{State: s.state, Op: "score"}
	}

	score, result, err := assessment.ScoreResponse(ctx, s.gen, s.question, s.response)
	if err != nil {
		s.state = StateAborted
		return nil, err
	}
	if result.UsedFallback {
		s.usedFallback = true
	}

	s.score = score
	s.record = assessment.NewRecord(s.question, s.response, score, !s.usedFallback, s.clock())
	s.state = StateComplete
	return score, nil
}

// Record returns the finished assessment record.
func (s *Session) Record() (*assessment.Record, error) {
	if s.state != StateComplete {
		return nil, &ErrBadState{State: s.state, Op: "read record"}
	}
	return s.record, nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Subject() string { return s.subject }

func (s *Session) Topic() string { return s.topic }

// Question returns the generated question, nil before generation.
func (s *Session) Question() *assessment.QuestionRubric { return s.question }
