package model

import "time"

// DateLayout is the single canonical date representation used in every table.
const DateLayout = "2006-01-02"

// WeeklyGoals holds target study hours indexed by time.Weekday.
type WeeklyGoals [7]float64

func (g WeeklyGoals) Hours(day time.Weekday) float64 {
	return g[day]
}

func (g WeeklyGoals) Minutes(day time.Weekday) float64 {
	return g[day] * 60
}

// Student is created out-of-band; the app only reads it.
type Student struct {
	Name     string      `json:"name"`
	Password string      `json:"-"`
	Goals    WeeklyGoals `json:"goals"`
}
