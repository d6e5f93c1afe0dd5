package model

type LoginRequest struct {
	// Password may arrive as a JSON string or number; both are compared as text.
	Password interface{} `json:"password"`
}

type StudyLogRequest struct {
	Date    string  `json:"date"`
	Subject Subject `json:"subject" binding:"required"`
	Minutes *int    `json:"minutes" binding:"required,min=0"`
	Memo    string  `json:"memo"`
}

type ExamRequest struct {
	Date     string `json:"date"`
	Exam     string `json:"exam" binding:"required"`
	Total    int    `json:"total" binding:"min=1"`
	Correct  *int   `json:"correct" binding:"required,min=0"`
	PassMark *int   `json:"pass_mark" binding:"required,min=0"`
}

type HomeworkToggleRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Done    *bool  `json:"done" binding:"required"`
}

type SummaryRequest struct {
	Date string `json:"date"`
}
