package questionnaire

import (
	"math"
	"slices"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

// ResponseStatus represents the status of a questionnaire response
type ResponseStatus string

const (
	ResponseStatusDraft     ResponseStatus = "DRAFT"     // Saved, not yet counted
	ResponseStatusSubmitted ResponseStatus = "SUBMITTED" // Counted by ranking
	ResponseStatusWithdrawn ResponseStatus = "WITHDRAWN"
)

// Answer is one scored answer. Points are out of MaxPoints.
type Answer struct {
	QuestionID string  `json:"question_id"`
	Question   string  `json:"question,omitempty"`
	Value      string  `json:"value"`
	Points     float64 `json:"points"`
	MaxPoints  float64 `json:"max_points"`
}

// Response is a candidate's answers to the screening questionnaire of a job
type Response struct {
	ID          kernel.QuestionnaireResponseID `db:"id" json:"id"`
	CandidateID kernel.CandidateID             `db:"candidate_id" json:"candidate_id"`
	JobID       kernel.JobID                   `db:"job_id" json:"job_id"`
	Answers     []Answer                       `db:"answers" json:"answers"`
	Score       float64                        `db:"score" json:"score"`
	Status      ResponseStatus                 `db:"status" json:"status"`
	SubmittedAt *time.Time                     `db:"submitted_at" json:"submitted_at,omitempty"`
	CreatedAt   time.Time                      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time                      `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (r *Response) IsSubmitted() bool { return r.Status == ResponseStatusSubmitted }

// CanUpdateStatus checks if status can be changed
func (r *Response) CanUpdateStatus(newStatus ResponseStatus) bool {
	validTransitions := map[ResponseStatus][]ResponseStatus{
		ResponseStatusDraft: {
			ResponseStatusSubmitted,
			ResponseStatusWithdrawn,
		},
		ResponseStatusSubmitted: {
			ResponseStatusWithdrawn,
		},
	}

	allowed, ok := validTransitions[r.Status]
	if !ok {
		return false
	}
	return slices.Contains(allowed, newStatus)
}

// UpdateStatus moves the response to newStatus
func (r *Response) UpdateStatus(newStatus ResponseStatus) error {
	if !r.CanUpdateStatus(newStatus) {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", r.Status).
			WithDetail("new_status", newStatus)
	}

	now := time.Now()
	r.Status = newStatus
	if newStatus == ResponseStatusSubmitted {
		r.SubmittedAt = &now
	}
	r.UpdatedAt = now
	return nil
}

// Submit marks a draft as submitted
func (r *Response) Submit() error {
	return r.UpdateStatus(ResponseStatusSubmitted)
}

// Withdraw removes the response from ranking
func (r *Response) Withdraw() error {
	return r.UpdateStatus(ResponseStatusWithdrawn)
}

// ScoreAnswers is 100 * earned / possible points, rounded to two decimals.
// Answers without max points are ignored; no scorable answer gives 0.
func ScoreAnswers(answers []Answer) float64 {
	var earned, possible float64
	for _, a := range answers {
		if a.MaxPoints <= 0 {
			continue
		}
		earned += math.Max(0, math.Min(a.Points, a.MaxPoints))
		possible += a.MaxPoints
	}
	if possible == 0 {
		return 0
	}
	return math.Round(10000*earned/possible) / 100
}

// AverageSubmitted averages the scores of submitted responses. ok is false
// when none is submitted.
func AverageSubmitted(responses []Response) (avg float64, ok bool) {
	var sum float64
	n := 0
	for _, r := range responses {
		if !r.IsSubmitted() {
			continue
		}
		sum += r.Score
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
