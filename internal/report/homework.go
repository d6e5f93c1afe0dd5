package report

import (
	"strings"

	"study-tracker/internal/model"
)

const (
	StatusDone    = "TRUE"
	StatusNotDone = "FALSE"
)

func IsDone(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), StatusDone)
}

func DoneValue(done bool) string {
	if done {
		return StatusDone
	}
	return StatusNotDone
}

// NeedsUpdate reports whether the checkbox state differs from the stored one.
func NeedsUpdate(status string, checked bool) bool {
	return IsDone(status) != checked
}

type HomeworkView struct {
	model.HomeworkItem
	Done bool `json:"done"`
}

func UserHomework(items []model.HomeworkItem, user string) []HomeworkView {
	var out []HomeworkView
	for _, item := range items {
		if item.Name == user {
			out = append(out, HomeworkView{HomeworkItem: item, Done: IsDone(item.Status)})
		}
	}
	return out
}
