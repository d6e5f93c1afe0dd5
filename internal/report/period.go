package report

import (
	"fmt"
	"sort"
	"time"

	"study-tracker/internal/model"
	"study-tracker/pkg/errors"
)

type Period string

const (
	PeriodLast7Days Period = "last7days"
	PeriodMonth     Period = "month"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodLast7Days:
		return PeriodLast7Days, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("%w: %q", errors.ErrInvalidPeriod, s)
	}
}

// Window returns the inclusive calendar-day range of the period ending today.
func (p Period) Window(now time.Time) (start, end time.Time) {
	end = dayOf(now)
	switch p {
	case PeriodMonth:
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	default:
		start = end.AddDate(0, 0, -6)
	}
	return start, end
}

type DayTotal struct {
	Date        string `json:"date"`
	Minutes     int    `json:"minutes"`
	GoalMinutes int    `json:"goal_minutes"`
}

type PeriodSummary struct {
	Period           Period         `json:"period"`
	Start            string         `json:"start"`
	End              string         `json:"end"`
	TrendGoalMinutes int            `json:"trend_goal_minutes"`
	TotalMinutes     int            `json:"total_minutes"`
	Daily            []DayTotal     `json:"daily"`
	BySubject        []SubjectTotal `json:"by_subject"`
	Empty            bool           `json:"empty"`
}

// PeriodReport groups the user's logs inside the period window by date and
// by subject. trendGoal is drawn flat across every day.
func PeriodReport(logs []model.StudyLog, user string, p Period, now time.Time, trendGoal int) (PeriodSummary, error) {
	start, end := p.Window(now)

	inWindow, err := filterRange(logs, user, start, end)
	if err != nil {
		return PeriodSummary{}, err
	}

	perDay := make(map[string]int)
	for _, l := range inWindow {
		perDay[l.Date] += l.Minutes
	}

	daily := make([]DayTotal, 0, len(perDay))
	for date, minutes := range perDay {
		daily = append(daily, DayTotal{Date: date, Minutes: minutes, GoalMinutes: trendGoal})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	return PeriodSummary{
		Period:           p,
		Start:            start.Format(model.DateLayout),
		End:              end.Format(model.DateLayout),
		TrendGoalMinutes: trendGoal,
		TotalMinutes:     TotalMinutes(inWindow),
		Daily:            daily,
		BySubject:        SubjectBreakdown(inWindow),
		Empty:            len(inWindow) == 0,
	}, nil
}

// ArchiveRange returns the user's raw logs dated within [start, end].
func ArchiveRange(logs []model.StudyLog, user string, start, end time.Time) ([]model.StudyLog, error) {
	return filterRange(logs, user, dayOf(start), dayOf(end))
}

// DefaultArchiveRange is the last n days up to today.
func DefaultArchiveRange(now time.Time, days int) (start, end time.Time) {
	end = dayOf(now)
	return end.AddDate(0, 0, -days), end
}

// ParseDate reads a canonical date in loc. Other representations are
// rejected, not reconciled.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(model.DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", errors.ErrInvalidDate,
			errors.ValidationError{Field: "Date", Value: s, Message: "must be YYYY-MM-DD"})
	}
	return t, nil
}

func filterRange(logs []model.StudyLog, user string, start, end time.Time) ([]model.StudyLog, error) {
	var out []model.StudyLog
	for _, l := range logs {
		if l.Name != user {
			continue
		}
		day, err := ParseDate(l.Date, start.Location())
		if err != nil {
			return nil, err
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
