package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers []Answer
		want    float64
	}{
		{"none", nil, 0},
		{"full marks", []Answer{{Points: 5, MaxPoints: 5}, {Points: 3, MaxPoints: 3}}, 100},
		{"partial", []Answer{{Points: 1, MaxPoints: 4}, {Points: 2, MaxPoints: 4}}, 37.5},
		{"unscored answers ignored", []Answer{{Value: "free text"}, {Points: 1, MaxPoints: 2}}, 50},
		{"points clamped", []Answer{{Points: 9, MaxPoints: 2}, {Points: -1, MaxPoints: 2}}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScoreAnswers(tt.answers), 1e-9)
		})
	}
}

func TestAverageSubmitted(t *testing.T) {
	_, ok := AverageSubmitted([]Response{{Score: 90, Status: ResponseStatusDraft}})
	assert.False(t, ok)

	avg, ok := AverageSubmitted([]Response{
		{Score: 80, Status: ResponseStatusSubmitted},
		{Score: 10, Status: ResponseStatusWithdrawn},
		{Score: 60, Status: ResponseStatusSubmitted},
	})
	assert.True(t, ok)
	assert.InDelta(t, 70, avg, 1e-9)
}

func TestStatusTransitions(t *testing.T) {
	r := &Response{Status: ResponseStatusDraft}
	assert.NoError(t, r.Submit())
	assert.NotNil(t, r.SubmittedAt)
	assert.Error(t, r.Submit())
	assert.NoError(t, r.Withdraw())
	assert.Error(t, r.Submit())
}
