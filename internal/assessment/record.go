package assessment

import (
	"time"

	"github.com/google/uuid"
)

// RecordVersion tags the persisted record format.
const RecordVersion = "2.0"

// timestampLayout is the metadata timestamp format.
const timestampLayout = "2006-01-02 15:04:05"

// NewRecord assembles the immutable assessment record. jsonValidated
// must be false when either generation served a fallback document.
func NewRecord(qr *QuestionRubric, response string, score *ScoreResult, jsonValidated bool, now time.Time) *Record {
	return &Record{
		ID:              uuid.NewString(),
		Subject:         qr.Subject,
		Topic:           qr.Topic,
		Question:        qr.Question,
		Rubric:          qr.Rubric,
		StudentResponse: response,
		Score:           *score,
		Metadata: Metadata{
			Version:       RecordVersion,
			JSONValidated: jsonValidated,
			Timestamp:     now.Format(timestampLayout),
		},
	}
}
