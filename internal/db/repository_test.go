package db

import (
	"context"
	"testing"
	"time"

	"study-tracker/internal/model"
	"study-tracker/internal/sheet"
	"study-tracker/internal/sheet/sheettest"
	"study-tracker/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudents(t *testing.T) {
	store := sheettest.NewStore(t)
	sheettest.Seed(t, store, sheet.TableStudents,
		[]interface{}{"A", "123", 1, 2, 3, 4, 5, 6, 7},
		[]interface{}{"B", "pw", "", "", "", "", "", "", 1.5},
	)
	repo := NewRepository(store)

	students, err := repo.Students(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)

	assert.Equal(t, "123", students[0].Password)
	assert.Equal(t, 1.0, students[0].Goals.Hours(time.Monday))
	assert.Equal(t, 7.0, students[0].Goals.Hours(time.Sunday))
	assert.Equal(t, 0.0, students[1].Goals.Hours(time.Monday))
	assert.Equal(t, 90.0, students[1].Goals.Minutes(time.Sunday))
}

func TestStudentByPassword(t *testing.T) {
	ctx := context.Background()
	store := sheettest.NewStore(t)
	sheettest.Seed(t, store, sheet.TableStudents,
		[]interface{}{"B", "456", "lots", 1, 1, 1, 1, 1, 1},
		[]interface{}{"A", 123, 1, 2, 3, 4, 5, 6, 7},
		[]interface{}{"C", "123", 9, 9, 9, 9, 9, 9, 9},
	)
	repo := NewRepository(store)

	student, found, err := repo.StudentByPassword(ctx, "123")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "A", student.Name)
	assert.Equal(t, 2.0, student.Goals.Hours(time.Tuesday))

	_, found, err = repo.StudentByPassword(ctx, "0123")
	require.NoError(t, err)
	assert.False(t, found)

	// the malformed row only fails its own login
	_, _, err = repo.StudentByPassword(ctx, "456")
	var verr errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Mon", verr.Field)
}

func TestAppendStudyLog(t *testing.T) {
	ctx := context.Background()
	store := sheettest.NewStore(t)
	repo := NewRepository(store)

	entry, err := repo.AppendStudyLog(ctx, model.StudyLog{
		Date: "2024-01-15", Name: "A", Subject: model.SubjectMath, Minutes: 40, Memo: "ch.3",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)

	logs, err := repo.StudyLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entry, logs[0])
}

func TestStudyLogsMalformedMinutes(t *testing.T) {
	store := sheettest.NewStore(t)
	sheettest.Seed(t, store, sheet.TableStudyLogs, []interface{}{"2024-01-15", "A", "Math", "lots"})

	_, err := NewRepository(store).StudyLogs(context.Background())

	var verr errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Minutes", verr.Field)
}

func TestAppendExam(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(sheettest.NewStore(t))

	_, err := repo.AppendExam(ctx, model.ExamResult{Date: "2024-01-15", Name: "A", Exam: "Day 5", Total: 20, Correct: 18, PassMark: 16})
	require.NoError(t, err)

	exams, err := repo.Exams(ctx)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, 18, exams[0].Correct)
	assert.True(t, exams[0].Passed())
}

func TestSetHomeworkStatus(t *testing.T) {
	ctx := context.Background()
	store := sheettest.NewStore(t)
	sheettest.Seed(t, store, sheet.TableHomework,
		[]interface{}{"2024-01-01", "A", "p.42", "FALSE", "hw-1"},
		[]interface{}{"2024-01-02", "B", "p.42", "FALSE", "hw-2"},
		[]interface{}{"2024-01-03", "A", "essay", "FALSE"},
	)
	repo := NewRepository(store)

	items, err := repo.Homework(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	t.Run("by id", func(t *testing.T) {
		found, err := repo.SetHomeworkStatus(ctx, items[1], "TRUE")
		require.NoError(t, err)
		assert.True(t, found)

		items, err := repo.Homework(ctx)
		require.NoError(t, err)
		assert.Equal(t, "FALSE", items[0].Status)
		assert.Equal(t, "TRUE", items[1].Status)
	})

	t.Run("by content without id", func(t *testing.T) {
		found, err := repo.SetHomeworkStatus(ctx, items[2], "TRUE")
		require.NoError(t, err)
		assert.True(t, found)

		items, err := repo.Homework(ctx)
		require.NoError(t, err)
		assert.Equal(t, "TRUE", items[2].Status)
	})

	t.Run("missing row is skipped", func(t *testing.T) {
		found, err := repo.SetHomeworkStatus(ctx, model.HomeworkItem{Content: "gone"}, "TRUE")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSummaries(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(sheettest.NewStore(t))

	require.NoError(t, repo.AppendSummary(ctx, model.Summary{Date: "2024-01-15", Name: "A", Minutes: 90, GoalMinutes: 120, Progress: 75}))

	rows, err := repo.Summaries(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 75.0, rows[0].Progress)
	assert.Equal(t, 120.0, rows[0].GoalMinutes)
}
