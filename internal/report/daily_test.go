package report

import (
	"testing"
	"time"

	"study-tracker/internal/model"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation(model.DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		goal    float64
		want    float64
	}{
		{name: "half", minutes: 60, goal: 120, want: 50},
		{name: "over", minutes: 300, goal: 120, want: 250},
		{name: "zero goal", minutes: 90, goal: 0, want: 0},
		{name: "nothing logged", minutes: 0, goal: 120, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProgressPercent(tt.minutes, tt.goal), 1e-9)
		})
	}
}

func TestDailyProgress(t *testing.T) {
	logs := []model.StudyLog{
		{Date: "2024-01-15", Name: "A", Subject: model.SubjectMath, Minutes: 60},
		{Date: "2024-01-15", Name: "A", Subject: model.SubjectEnglish, Minutes: 30},
		{Date: "2024-01-15", Name: "A", Subject: model.SubjectMath, Minutes: 30},
		{Date: "2024-01-15", Name: "B", Subject: model.SubjectMath, Minutes: 500},
		{Date: "2024-01-16", Name: "A", Subject: model.SubjectMath, Minutes: 500},
	}
	var goals model.WeeklyGoals
	goals[time.Monday] = 2 // 2024-01-15 is a Monday

	daily := DailyProgress(logs, "A", date("2024-01-15"), goals)

	assert.Equal(t, "2024-01-15", daily.Date)
	assert.Equal(t, 2.0, daily.GoalHours)
	assert.Equal(t, 120.0, daily.GoalMinutes)
	assert.Equal(t, 120, daily.TotalMinutes)
	assert.InDelta(t, 100.0, daily.Progress, 1e-9)
	assert.Equal(t, []SubjectTotal{
		{Subject: model.SubjectMath, Minutes: 90},
		{Subject: model.SubjectEnglish, Minutes: 30},
	}, daily.BySubject)
	assert.Len(t, daily.Logs, 3)
}

func TestDailyProgressZeroGoal(t *testing.T) {
	logs := []model.StudyLog{{Date: "2024-01-14", Name: "A", Subject: model.SubjectMath, Minutes: 45}}

	daily := DailyProgress(logs, "A", date("2024-01-14"), model.WeeklyGoals{})

	assert.Equal(t, 45, daily.TotalMinutes)
	assert.Equal(t, 0.0, daily.Progress)
}

func TestDailyProgressEmpty(t *testing.T) {
	daily := DailyProgress(nil, "A", date("2024-01-15"), model.WeeklyGoals{3, 3, 3, 3, 3, 3, 3})

	assert.Equal(t, 0, daily.TotalMinutes)
	assert.Equal(t, 0.0, daily.Progress)
	assert.Empty(t, daily.BySubject)
}

func TestSubjectSumsMatchDailyTotal(t *testing.T) {
	logs := []model.StudyLog{
		{Date: "2024-03-01", Name: "A", Subject: model.SubjectKorean, Minutes: 15},
		{Date: "2024-03-01", Name: "A", Subject: model.SubjectScience, Minutes: 40},
		{Date: "2024-03-01", Name: "A", Subject: "Art", Minutes: 25},
		{Date: "2024-03-01", Name: "A", Subject: model.SubjectOther, Minutes: 10},
		{Date: "2024-03-01", Name: "A", Subject: model.SubjectKorean, Minutes: 5},
	}

	daily := DailyProgress(logs, "A", date("2024-03-01"), model.WeeklyGoals{})

	sum := 0
	for _, s := range daily.BySubject {
		sum += s.Minutes
	}
	assert.Equal(t, daily.TotalMinutes, sum)
	assert.Equal(t, model.Subject("Art"), daily.BySubject[len(daily.BySubject)-1].Subject)
}

func TestDailySubjectsSumToTotal(t *testing.T) {
	day := date("2024-01-17")
	tests := []struct {
		name string
		logs []model.StudyLog
	}{
		{name: "no logs"},
		{
			name: "single subject repeated",
			logs: []model.StudyLog{
				{Date: "2024-01-17", Name: "A", Subject: model.SubjectKorean, Minutes: 25},
				{Date: "2024-01-17", Name: "A", Subject: model.SubjectKorean, Minutes: 35},
			},
		},
		{
			name: "mixed with noise",
			logs: []model.StudyLog{
				{Date: "2024-01-17", Name: "A", Subject: model.SubjectMath, Minutes: 45},
				{Date: "2024-01-17", Name: "A", Subject: model.SubjectScience, Minutes: 15},
				{Date: "2024-01-17", Name: "A", Subject: "Music", Minutes: 20},
				{Date: "2024-01-17", Name: "A", Subject: model.SubjectMath, Minutes: 5},
				{Date: "2024-01-17", Name: "A", Subject: model.SubjectOther, Minutes: 0},
				{Date: "2024-01-17", Name: "B", Subject: model.SubjectMath, Minutes: 300},
				{Date: "2024-01-18", Name: "A", Subject: model.SubjectEnglish, Minutes: 90},
				{Date: "2024-1-17", Name: "A", Subject: model.SubjectEnglish, Minutes: 90},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			daily := DailyProgress(tt.logs, "A", day, model.WeeklyGoals{})

			sum := 0
			seen := make(map[model.Subject]bool)
			for _, st := range daily.BySubject {
				assert.False(t, seen[st.Subject], "subject %s listed twice", st.Subject)
				seen[st.Subject] = true
				sum += st.Minutes
			}
			assert.Equal(t, daily.TotalMinutes, sum)
			assert.Equal(t, TotalMinutes(daily.Logs), sum)
		})
	}
}
