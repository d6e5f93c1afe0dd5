package api

import (
	"fmt"
	"net/http"
	"time"

	"study-tracker/internal/model"
	"study-tracker/internal/report"

	"github.com/gin-gonic/gin"
)

// dateOrToday parses an optional date input; empty means today.
func (h *Handler) dateOrToday(raw string) (time.Time, error) {
	if raw == "" {
		return h.today(), nil
	}
	return report.ParseDate(raw, h.loc)
}

func (h *Handler) Daily(c *gin.Context) {
	sess := currentSession(c)

	day, err := h.dateOrToday(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.repo.StudyLogs(c.Request.Context())
	if err != nil {
		h.storeFailure(c, err, "Failed to fetch study logs")
		return
	}

	daily := report.DailyProgress(logs, sess.UserName, day, sess.Goals)
	resp := gin.H{
		"daily": daily,
		"label": fmt.Sprintf("Goal: %gh (%gmin)", daily.GoalHours, daily.GoalMinutes),
	}
	if len(daily.BySubject) > 0 {
		resp["chart"] = subjectChart(ChartArc, "Share by subject", daily.BySubject)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddStudyLog(c *gin.Context) {
	sess := currentSession(c)

	var req model.StudyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !req.Subject.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subject", "subjects": model.Subjects})
		return
	}
	day, err := h.dateOrToday(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.repo.AppendStudyLog(c.Request.Context(), model.StudyLog{
		Date:    day.Format(model.DateLayout),
		Name:    sess.UserName,
		Subject: req.Subject,
		Minutes: *req.Minutes,
		Memo:    req.Memo,
	})
	if err != nil {
		h.storeFailure(c, err, "Failed to save study log")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Saved", "log": entry})
}

func (h *Handler) Homework(c *gin.Context) {
	sess := currentSession(c)

	items, err := h.repo.Homework(c.Request.Context())
	if err != nil {
		h.storeFailure(c, err, "Failed to fetch homework")
		return
	}

	mine := report.UserHomework(items, sess.UserName)
	if len(mine) == 0 {
		c.JSON(http.StatusOK, gin.H{"items": []report.HomeworkView{}, "message": "No homework assigned"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": mine})
}

// ToggleHomework writes the checkbox state when it differs from the stored
// one. Items missing from the table are skipped without an error.
func (h *Handler) ToggleHomework(c *gin.Context) {
	sess := currentSession(c)
	ctx := c.Request.Context()

	var req model.HomeworkToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.ID == "" && req.Content == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	done := *req.Done

	items, err := h.repo.Homework(ctx)
	if err != nil {
		h.storeFailure(c, err, "Failed to fetch homework")
		return
	}

	var target *report.HomeworkView
	for _, item := range report.UserHomework(items, sess.UserName) {
		if (req.ID != "" && item.ID == req.ID) || (req.ID == "" && item.Content == req.Content) {
			item := item
			target = &item
			break
		}
	}
	if target == nil {
		h.log.Debug().Str("user", sess.UserName).Str("id", req.ID).Msg("Homework item not found")
		c.JSON(http.StatusOK, gin.H{"updated": false, "done": done})
		return
	}
	if !report.NeedsUpdate(target.Status, done) {
		c.JSON(http.StatusOK, gin.H{"updated": false, "done": done})
		return
	}

	updated, err := h.repo.SetHomeworkStatus(ctx, target.HomeworkItem, report.DoneValue(done))
	if err != nil {
		h.storeFailure(c, err, "Failed to update homework")
		return
	}

	resp := gin.H{"updated": updated, "done": done}
	if updated {
		resp["message"] = "Status updated"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Exams(c *gin.Context) {
	sess := currentSession(c)

	exams, err := h.repo.Exams(c.Request.Context())
	if err != nil {
		h.storeFailure(c, err, "Failed to fetch exams")
		return
	}

	recent := report.RecentExams(exams, sess.UserName, h.cfg.Report.RecentExams)
	resp := gin.H{"items": recent}
	if len(recent) == 0 {
		resp["message"] = "No test results yet"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddExam(c *gin.Context) {
	sess := currentSession(c)

	var req model.ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	day, err := h.dateOrToday(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exam, err := h.repo.AppendExam(c.Request.Context(), model.ExamResult{
		Date:     day.Format(model.DateLayout),
		Name:     sess.UserName,
		Exam:     req.Exam,
		Total:    req.Total,
		Correct:  *req.Correct,
		PassMark: *req.PassMark,
	})
	if err != nil {
		h.storeFailure(c, err, "Failed to save exam")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Saved",
		"exam":    report.ExamView{ExamResult: exam, Verdict: report.ExamVerdict(exam)},
	})
}

func (h *Handler) Report(c *gin.Context) {
	sess := currentSession(c)

	period, err := report.ParsePeriod(c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.repo.StudyLogs(c.Request.Context())
	if err != nil {
		h.storeFailure(c, err, "Failed to fetch study logs")
		return
	}

	summary, err := report.PeriodReport(logs, sess.UserName, period, h.today(), h.cfg.Report.TrendGoalMinutes)
	if err != nil {
		h.storeFailure(c, err, "Failed to build report")
		return
	}

	if summary.Empty {
		c.JSON(http.StatusOK, gin.H{"report": summary, "message": "No data for this period"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report": summary,
		"charts": gin.H{
			"trend":    trendChart(summary),
			"subjects": subjectChart(ChartBar, "Minutes by subject", summary.BySubject),
		},
	})
}

func (h *Handler) Archive(c *gin.Context) {
	sess := currentSession(c)

	start, end := report.DefaultArchiveRange(h.today(), h.cfg.Report.ArchiveDefaultDays)
	var err error
	if raw := c.Query("start"); raw != "" {
		if start, err = report.ParseDate(raw, h.loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if raw := c.Query("end"); raw != "" {
		if end, err = report.ParseDate(raw, h.loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	logs, err := h.repo.StudyLogs(c.Request.Context())
	if err != nil {
		h.storeFailure(c, err, "Failed to fetch study logs")
		return
	}

	rows, err := report.ArchiveRange(logs, sess.UserName, start, end)
	if err != nil {
		h.storeFailure(c, err, "Failed to filter archive")
		return
	}
	if rows == nil {
		rows = []model.StudyLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"start": start.Format(model.DateLayout),
		"end":   end.Format(model.DateLayout),
		"rows":  rows,
	})
}

// RequestSummaries queues a summary job when a queue is configured and
// builds the summaries inline otherwise.
func (h *Handler) RequestSummaries(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.SummaryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	job := model.SummaryJob{Date: req.Date}
	day, err := h.summary.ParseJobDate(job, h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	job.Date = day.Format(model.DateLayout)

	if h.producer != nil {
		if err := h.producer.EnqueueSummaryJob(ctx, job); err != nil {
			h.log.Error().Err(err).Msg("Failed to enqueue summary job")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue summary job"})
			return
		}
		h.log.Info().Str("date", job.Date).Msg("Summary job enqueued")
		c.JSON(http.StatusAccepted, gin.H{"queued": true, "job": job})
		return
	}

	written, err := h.summary.BuildDaily(ctx, day)
	if err != nil {
		h.storeFailure(c, err, "Failed to build summaries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"queued": false, "date": job.Date, "written": written})
}
