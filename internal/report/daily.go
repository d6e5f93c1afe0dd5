// Package report holds the aggregations behind the dashboard views. All
// functions are pure: the same rows and clock always give the same result.
package report

import (
	"sort"
	"time"

	"study-tracker/internal/model"
)

// DefaultTrendGoalMinutes is the flat goal line of the period report. It is
// independent of the per-weekday goals used by DailyProgress.
const DefaultTrendGoalMinutes = 420

type SubjectTotal struct {
	Subject model.Subject `json:"subject"`
	Minutes int           `json:"minutes"`
}

type Daily struct {
	Date         string           `json:"date"`
	GoalHours    float64          `json:"goal_hours"`
	GoalMinutes  float64          `json:"goal_minutes"`
	TotalMinutes int              `json:"total_minutes"`
	Progress     float64          `json:"progress"`
	BySubject    []SubjectTotal   `json:"by_subject"`
	Logs         []model.StudyLog `json:"logs"`
}

// FilterDay keeps the user's logs whose date string equals the day exactly.
func FilterDay(logs []model.StudyLog, user string, day time.Time) []model.StudyLog {
	date := day.Format(model.DateLayout)
	var out []model.StudyLog
	for _, l := range logs {
		if l.Name == user && l.Date == date {
			out = append(out, l)
		}
	}
	return out
}

// ProgressPercent is minutes over goal minutes, as a percentage; zero when
// there is no goal.
func ProgressPercent(minutes int, goalMinutes float64) float64 {
	if goalMinutes <= 0 {
		return 0
	}
	return float64(minutes) / goalMinutes * 100
}

func TotalMinutes(logs []model.StudyLog) int {
	total := 0
	for _, l := range logs {
		total += l.Minutes
	}
	return total
}

// DailyProgress measures one user's day against the goal of that weekday.
func DailyProgress(logs []model.StudyLog, user string, day time.Time, goals model.WeeklyGoals) Daily {
	dayLogs := FilterDay(logs, user, day)
	total := TotalMinutes(dayLogs)
	goalMinutes := goals.Minutes(day.Weekday())

	return Daily{
		Date:         day.Format(model.DateLayout),
		GoalHours:    goals.Hours(day.Weekday()),
		GoalMinutes:  goalMinutes,
		TotalMinutes: total,
		Progress:     ProgressPercent(total, goalMinutes),
		BySubject:    SubjectBreakdown(dayLogs),
		Logs:         dayLogs,
	}
}

// SubjectBreakdown sums minutes per subject. Known subjects come first in
// their fixed order, anything else follows alphabetically.
func SubjectBreakdown(logs []model.StudyLog) []SubjectTotal {
	sums := make(map[model.Subject]int)
	for _, l := range logs {
		sums[l.Subject] += l.Minutes
	}

	totals := make([]SubjectTotal, 0, len(sums))
	for subject, minutes := range sums {
		totals = append(totals, SubjectTotal{Subject: subject, Minutes: minutes})
	}

	sort.Slice(totals, func(i, j int) bool {
		ri, rj := subjectRank(totals[i].Subject), subjectRank(totals[j].Subject)
		if ri != rj {
			return ri < rj
		}
		return totals[i].Subject < totals[j].Subject
	})
	return totals
}

func subjectRank(s model.Subject) int {
	for i, known := range model.Subjects {
		if s == known {
			return i
		}
	}
	return len(model.Subjects)
}
