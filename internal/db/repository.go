package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"study-tracker/internal/logger"
	"study-tracker/internal/model"
	"study-tracker/internal/sheet"
	"study-tracker/pkg/errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HomeworkDoneColumn is the 1-based position of the completion flag.
const HomeworkDoneColumn = 4

var weekdayColumns = [7]string{
	time.Sunday:    "Sun",
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
}

// Repository maps store records to models. Every call re-reads the table.
type Repository interface {
	Students(ctx context.Context) ([]model.Student, error)
	StudentByPassword(ctx context.Context, password string) (model.Student, bool, error)
	StudyLogs(ctx context.Context) ([]model.StudyLog, error)
	Homework(ctx context.Context) ([]model.HomeworkItem, error)
	Exams(ctx context.Context) ([]model.ExamResult, error)
	Summaries(ctx context.Context) ([]model.Summary, error)
	AppendStudyLog(ctx context.Context, entry model.StudyLog) (model.StudyLog, error)
	AppendExam(ctx context.Context, exam model.ExamResult) (model.ExamResult, error)
	AppendSummary(ctx context.Context, summary model.Summary) error
	SetHomeworkStatus(ctx context.Context, item model.HomeworkItem, status string) (bool, error)
}

type repository struct {
	store sheet.Store
	newID func() string
	log   zerolog.Logger
}

func NewRepository(store sheet.Store) Repository {
	return &repository{
		store: store,
		newID: uuid.NewString,
		log:   logger.For("repository"),
	}
}

func (r *repository) Students(ctx context.Context) ([]model.Student, error) {
	records, err := r.store.FetchAll(ctx, sheet.TableStudents)
	if err != nil {
		return nil, err
	}

	students := make([]model.Student, 0, len(records))
	for _, rec := range records {
		student, err := parseStudent(rec)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, nil
}

// StudentByPassword returns the first student whose stored password equals
// password. Goal cells are parsed for the matched row only, so a malformed
// row does not lock out the others.
func (r *repository) StudentByPassword(ctx context.Context, password string) (model.Student, bool, error) {
	records, err := r.store.FetchAll(ctx, sheet.TableStudents)
	if err != nil {
		return model.Student{}, false, err
	}

	for _, rec := range records {
		if rec.Get("Password") != password {
			continue
		}
		student, err := parseStudent(rec)
		if err != nil {
			return model.Student{}, false, err
		}
		return student, true, nil
	}
	return model.Student{}, false, nil
}

func parseStudent(rec sheet.Record) (model.Student, error) {
	student := model.Student{
		Name:     rec.Get("Name"),
		Password: rec.Get("Password"),
	}
	for day, col := range weekdayColumns {
		hours, err := parseFloat(rec, col)
		if err != nil {
			return model.Student{}, err
		}
		student.Goals[day] = hours
	}
	return student, nil
}

func (r *repository) StudyLogs(ctx context.Context) ([]model.StudyLog, error) {
	records, err := r.store.FetchAll(ctx, sheet.TableStudyLogs)
	if err != nil {
		return nil, err
	}

	logs := make([]model.StudyLog, 0, len(records))
	for _, rec := range records {
		minutes, err := parseInt(rec, "Minutes")
		if err != nil {
			return nil, err
		}
		logs = append(logs, model.StudyLog{
			ID:      rec.Get("ID"),
			Date:    rec.Get("Date"),
			Name:    rec.Get("Name"),
			Subject: model.Subject(rec.Get("Subject")),
			Minutes: minutes,
			Memo:    rec.Get("Memo"),
		})
	}
	return logs, nil
}

func (r *repository) Homework(ctx context.Context) ([]model.HomeworkItem, error) {
	records, err := r.store.FetchAll(ctx, sheet.TableHomework)
	if err != nil {
		return nil, err
	}

	items := make([]model.HomeworkItem, 0, len(records))
	for _, rec := range records {
		items = append(items, model.HomeworkItem{
			ID:      rec.Get("ID"),
			Date:    rec.Get("Date"),
			Name:    rec.Get("Name"),
			Content: rec.Get("Content"),
			Status:  rec.Get("Done"),
		})
	}
	return items, nil
}

func (r *repository) Exams(ctx context.Context) ([]model.ExamResult, error) {
	records, err := r.store.FetchAll(ctx, sheet.TableExams)
	if err != nil {
		return nil, err
	}

	exams := make([]model.ExamResult, 0, len(records))
	for _, rec := range records {
		exam := model.ExamResult{
			ID:   rec.Get("ID"),
			Date: rec.Get("Date"),
			Name: rec.Get("Name"),
			Exam: rec.Get("Exam"),
		}
		if exam.Total, err = parseInt(rec, "Total"); err != nil {
			return nil, err
		}
		if exam.Correct, err = parseInt(rec, "Correct"); err != nil {
			return nil, err
		}
		if exam.PassMark, err = parseInt(rec, "PassMark"); err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, nil
}

func (r *repository) Summaries(ctx context.Context) ([]model.Summary, error) {
	records, err := r.store.FetchAll(ctx, sheet.TableSummaries)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.Summary, 0, len(records))
	for _, rec := range records {
		s := model.Summary{
			Date: rec.Get("Date"),
			Name: rec.Get("Name"),
		}
		if s.Minutes, err = parseInt(rec, "Minutes"); err != nil {
			return nil, err
		}
		if s.GoalMinutes, err = parseFloat(rec, "GoalMinutes"); err != nil {
			return nil, err
		}
		if s.Progress, err = parseFloat(rec, "Progress"); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func (r *repository) AppendStudyLog(ctx context.Context, entry model.StudyLog) (model.StudyLog, error) {
	entry.ID = r.newID()
	row := []interface{}{entry.Date, entry.Name, string(entry.Subject), entry.Minutes, entry.Memo, entry.ID}
	if err := r.store.AppendRow(ctx, sheet.TableStudyLogs, row); err != nil {
		return model.StudyLog{}, fmt.Errorf("failed to append study log: %w", err)
	}

	r.log.Info().
		Str("user", entry.Name).
		Str("date", entry.Date).
		Str("subject", string(entry.Subject)).
		Int("minutes", entry.Minutes).
		Msg("Study log recorded")
	return entry, nil
}

func (r *repository) AppendExam(ctx context.Context, exam model.ExamResult) (model.ExamResult, error) {
	exam.ID = r.newID()
	row := []interface{}{exam.Date, exam.Name, exam.Exam, exam.Total, exam.Correct, exam.PassMark, exam.ID}
	if err := r.store.AppendRow(ctx, sheet.TableExams, row); err != nil {
		return model.ExamResult{}, fmt.Errorf("failed to append exam: %w", err)
	}

	r.log.Info().Str("user", exam.Name).Str("exam", exam.Exam).Msg("Exam result recorded")
	return exam, nil
}

func (r *repository) AppendSummary(ctx context.Context, s model.Summary) error {
	row := []interface{}{s.Date, s.Name, s.Minutes, s.GoalMinutes, strconv.FormatFloat(s.Progress, 'f', 1, 64)}
	if err := r.store.AppendRow(ctx, sheet.TableSummaries, row); err != nil {
		return fmt.Errorf("failed to append summary: %w", err)
	}
	return nil
}

// SetHomeworkStatus writes status into the item's completion cell. Items
// with an ID are located by it; older rows without one fall back to the
// first row whose cell equals the content text.
func (r *repository) SetHomeworkStatus(ctx context.Context, item model.HomeworkItem, status string) (bool, error) {
	match := item.ID
	if match == "" {
		match = item.Content
	}

	found, err := r.store.FindAndUpdate(ctx, sheet.TableHomework, match, HomeworkDoneColumn, status)
	if err != nil {
		return false, fmt.Errorf("failed to update homework: %w", err)
	}
	if !found {
		r.log.Debug().Str("match", match).Msg("Homework row not found, update skipped")
	}
	return found, nil
}

func parseInt(rec sheet.Record, field string) (int, error) {
	raw := strings.ReplaceAll(rec.Get(field), ",", "")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// formatted numbers may carry a fraction, e.g. "30.0"
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, errors.ValidationError{Field: field, Value: raw, Message: "must be an integer"}
		}
		v = int(f)
	}
	return v, nil
}

func parseFloat(rec sheet.Record, field string) (float64, error) {
	raw := strings.ReplaceAll(rec.Get(field), ",", "")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.ValidationError{Field: field, Value: raw, Message: "must be a number"}
	}
	return v, nil
}
