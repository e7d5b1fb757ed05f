// Package session drives a single assessment from subject entry to the
// finished record through a forward-only state machine.
package session

// State is the session lifecycle phase.
type State int

const (
	StateAwaitingSubjectTopic State = iota // Collecting subject and topic
	StateGeneratingQuestion                // Question generation in flight
	StateAwaitingResponse                  // Question shown, waiting for the student
	StateScoring                           // Scoring in flight
	StateComplete                          // Record assembled
	StateAborted                           // Fatal provider error; no partial record
)

func (s State) String() string {
	switch s {
	case StateAwaitingSubjectTopic:
		return "awaiting-subject-topic"
	case StateGeneratingQuestion:
		return "generating-question"
	case StateAwaitingResponse:
		return "awaiting-response"
	case StateScoring:
		return "scoring"
	case StateComplete:
		return "complete"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
