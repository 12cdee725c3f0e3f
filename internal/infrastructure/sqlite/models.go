package sqlite

import (
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/requisite/internal/state"
)

// SubmissionModel represents a row of the submissions table joined with its
// values. Timestamps are Unix milliseconds.
type SubmissionModel struct {
	ID            string
	RequirementID string
	SubmittedAt   int64
	Values        map[string]string
}

func toSubmissionModel(s state.Submission) *SubmissionModel {
	return &SubmissionModel{
		ID:            s.ID.String(),
		RequirementID: s.RequirementID,
		SubmittedAt:   s.SubmittedAt.UnixMilli(),
		Values:        s.Values,
	}
}

func (m *SubmissionModel) toDomain() (state.Submission, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return state.Submission{}, err
	}
	return state.Submission{
		ID:            id,
		RequirementID: m.RequirementID,
		Values:        m.Values,
		SubmittedAt:   time.UnixMilli(m.SubmittedAt).UTC(),
	}, nil
}
