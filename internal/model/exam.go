package model

type ExamResult struct {
	ID       string `json:"id,omitempty"`
	Date     string `json:"date"`
	Name     string `json:"name"`
	Exam     string `json:"exam"`
	Total    int    `json:"total"`
	Correct  int    `json:"correct"`
	PassMark int    `json:"pass_mark"`
}

func (e ExamResult) Passed() bool {
	return e.Correct >= e.PassMark
}
