package subsidy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
)

// referenceDate mirrors the demo dataset's fixed evaluation instant.
var referenceDate = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

func TestClassifierClassify(t *testing.T) {
	t.Parallel()

	cl := subsidy.Classifier{Window: 30}

	tests := []struct {
		name     string
		deadline string
		want     subsidy.Classification
	}{
		{
			name:     "inside window is closing soon",
			deadline: "2025-09-10",
			want: subsidy.Classification{
				Status:        subsidy.StatusClosingSoon,
				DaysRemaining: 21,
			},
		},
		{
			name:     "boundary day counts as closing soon",
			deadline: "2025-09-19",
			want: subsidy.Classification{
				Status:        subsidy.StatusClosingSoon,
				DaysRemaining: 30,
			},
		},
		{
			name:     "one day past the window stays open",
			deadline: "2025-09-20",
			want: subsidy.Classification{
				Status:        subsidy.StatusOpen,
				DaysRemaining: 31,
			},
		},
		{
			name:     "deadline today is day zero and closing soon",
			deadline: "2025-08-20",
			want: subsidy.Classification{
				Status:        subsidy.StatusClosingSoon,
				DaysRemaining: 0,
			},
		},
		{
			name:     "past deadline is closed",
			deadline: "2025-06-30",
			want: subsidy.Classification{
				Status:        subsidy.StatusClosed,
				DaysRemaining: -51,
			},
		},
		{
			name:     "far future stays open",
			deadline: "2026-02-27",
			want: subsidy.Classification{
				Status:        subsidy.StatusOpen,
				DaysRemaining: 191,
			},
		},
		{
			name:     "budget cap sentinel is open ended and flagged",
			deadline: subsidy.BudgetCapSentinel,
			want: subsidy.Classification{
				Status:       subsidy.StatusOpen,
				OpenEnded:    true,
				BudgetCapped: true,
			},
		},
		{
			name:     "free text is open ended but not budget capped",
			deadline: "随時受付",
			want: subsidy.Classification{
				Status:    subsidy.StatusOpen,
				OpenEnded: true,
			},
		},
		{
			name:     "empty deadline never closes",
			deadline: "",
			want: subsidy.Classification{
				Status:    subsidy.StatusOpen,
				OpenEnded: true,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cl.Classify(tt.deadline, referenceDate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyPartialDayRoundsUp(t *testing.T) {
	t.Parallel()

	// Evaluating mid-day: the deadline midnight is 0.5 days ahead, which
	// still counts as one whole day.
	now := time.Date(2025, 8, 19, 12, 0, 0, 0, time.UTC)
	got := subsidy.Classifier{Window: 30}.Classify("2025-08-20", now)
	assert.Equal(t, subsidy.StatusClosingSoon, got.Status)
	assert.Equal(t, 1, got.DaysRemaining)
}

func TestClassifierWiderWindow(t *testing.T) {
	t.Parallel()

	// A 90-day window promotes the same deadline a 30-day window leaves open.
	deadline := "2025-10-31"

	narrow := subsidy.Classifier{Window: 30}.Classify(deadline, referenceDate)
	assert.Equal(t, subsidy.StatusOpen, narrow.Status)

	wide := subsidy.Classifier{Window: 90}.Classify(deadline, referenceDate)
	assert.Equal(t, subsidy.StatusClosingSoon, wide.Status)
	assert.Equal(t, 72, wide.DaysRemaining)
}

func TestClassificationActive(t *testing.T) {
	t.Parallel()

	assert.True(t, subsidy.Classification{Status: subsidy.StatusOpen}.Active())
	assert.True(t, subsidy.Classification{Status: subsidy.StatusClosingSoon}.Active())
	assert.False(t, subsidy.Classification{Status: subsidy.StatusClosed}.Active())
}

func TestParseDeadline(t *testing.T) {
	t.Parallel()

	got, ok := subsidy.ParseDeadline("2025-12-05")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC), got)

	_, ok = subsidy.ParseDeadline(subsidy.BudgetCapSentinel)
	assert.False(t, ok)

	_, ok = subsidy.ParseDeadline("2025/12/05")
	assert.False(t, ok)
}

func TestDaysUntil(t *testing.T) {
	t.Parallel()

	days, ok := subsidy.DaysUntil("2025-09-10", referenceDate)
	require.True(t, ok)
	assert.Equal(t, 21, days)

	days, ok = subsidy.DaysUntil("2025-08-18", referenceDate)
	require.True(t, ok)
	assert.Equal(t, -2, days)

	_, ok = subsidy.DaysUntil(subsidy.BudgetCapSentinel, referenceDate)
	assert.False(t, ok)
}
