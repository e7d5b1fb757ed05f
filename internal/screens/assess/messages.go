package assess

import (
	"time"

	"github.com/abhisek/viva/internal/assessment"
)

// questionReadyMsg is sent when the question and rubric are ready.
type questionReadyMsg struct {
	Question *assessment.QuestionRubric
}

// scoreReadyMsg is sent when scoring finished and the record is assembled.
type scoreReadyMsg struct {
	Score  *assessment.ScoreResult
	Record *assessment.Record
}

// generateFailedMsg is sent when a generation phase fails fatally.
type generateFailedMsg struct {
	Err error
}

// spinnerTickMsg is sent at short intervals to animate the waiting spinner.
type spinnerTickMsg time.Time
