package report

import "study-tracker/internal/model"

type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

func ExamVerdict(e model.ExamResult) Verdict {
	if e.Passed() {
		return VerdictPass
	}
	return VerdictFail
}

type ExamView struct {
	model.ExamResult
	Verdict Verdict `json:"verdict"`
}

// RecentExams returns the user's last n results in store order.
func RecentExams(exams []model.ExamResult, user string, n int) []ExamView {
	var mine []model.ExamResult
	for _, e := range exams {
		if e.Name == user {
			mine = append(mine, e)
		}
	}
	if n > 0 && len(mine) > n {
		mine = mine[len(mine)-n:]
	}

	out := make([]ExamView, 0, len(mine))
	for _, e := range mine {
		out = append(out, ExamView{ExamResult: e, Verdict: ExamVerdict(e)})
	}
	return out
}
