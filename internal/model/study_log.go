package model

type Subject string

const (
	SubjectMath    Subject = "Math"
	SubjectEnglish Subject = "English"
	SubjectKorean  Subject = "Korean"
	SubjectScience Subject = "Science"
	SubjectOther   Subject = "Other"
)

var Subjects = []Subject{SubjectMath, SubjectEnglish, SubjectKorean, SubjectScience, SubjectOther}

func (s Subject) Valid() bool {
	for _, known := range Subjects {
		if s == known {
			return true
		}
	}
	return false
}

type StudyLog struct {
	ID      string  `json:"id,omitempty"`
	Date    string  `json:"date"`
	Name    string  `json:"name"`
	Subject Subject `json:"subject"`
	Minutes int     `json:"minutes"`
	Memo    string  `json:"memo,omitempty"`
}
