package model

// Summary is one student's study total for one day.
type Summary struct {
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Minutes     int     `json:"minutes"`
	GoalMinutes float64 `json:"goal_minutes"`
	Progress    float64 `json:"progress"`
}

type SummaryJob struct {
	Date string `json:"date"`
}
