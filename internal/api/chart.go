package api

import "study-tracker/internal/report"

const (
	ChartArc  = "arc"
	ChartLine = "line"
	ChartBar  = "bar"
)

// Chart is a render-ready series for the dashboard's chart sink. Rule, when
// set, is a horizontal goal line drawn over the series.
type Chart struct {
	Kind   string   `json:"kind"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Rule   *int     `json:"rule,omitempty"`
}

func subjectChart(kind, title string, totals []report.SubjectTotal) Chart {
	chart := Chart{
		Kind:   kind,
		Title:  title,
		Labels: make([]string, 0, len(totals)),
		Values: make([]int, 0, len(totals)),
	}
	for _, t := range totals {
		chart.Labels = append(chart.Labels, string(t.Subject))
		chart.Values = append(chart.Values, t.Minutes)
	}
	return chart
}

func trendChart(summary report.PeriodSummary) Chart {
	goal := summary.TrendGoalMinutes
	chart := Chart{
		Kind:   ChartLine,
		Title:  "Minutes per day",
		Labels: make([]string, 0, len(summary.Daily)),
		Values: make([]int, 0, len(summary.Daily)),
		Rule:   &goal,
	}
	for _, d := range summary.Daily {
		chart.Labels = append(chart.Labels, d.Date)
		chart.Values = append(chart.Values, d.Minutes)
	}
	return chart
}
