package worker

import (
	"context"
	"testing"
	"time"

	"study-tracker/internal/config"
	"study-tracker/internal/db"
	"study-tracker/internal/sheet"
	"study-tracker/internal/sheet/sheettest"
	"study-tracker/internal/summary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRunTime(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)

	tests := []struct {
		name  string
		now   time.Time
		runAt string
		want  time.Time
	}{
		{
			name:  "later today",
			now:   time.Date(2024, 1, 15, 10, 0, 0, 0, loc),
			runAt: "23:59",
			want:  time.Date(2024, 1, 15, 23, 59, 0, 0, loc),
		},
		{
			name:  "already passed",
			now:   time.Date(2024, 1, 15, 23, 59, 30, 0, loc),
			runAt: "23:59",
			want:  time.Date(2024, 1, 16, 23, 59, 0, 0, loc),
		},
		{
			name:  "exactly now rolls over",
			now:   time.Date(2024, 1, 31, 6, 0, 0, 0, loc),
			runAt: "06:00",
			want:  time.Date(2024, 2, 1, 6, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextRunTime(tt.now, tt.runAt)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := nextRunTime(time.Now(), "midnight")
	assert.Error(t, err)
}

func newTestWorker(t *testing.T) (*SummaryWorker, db.Repository) {
	t.Helper()

	store := sheettest.NewStore(t)
	sheettest.Seed(t, store, sheet.TableStudents, sheettest.Student("A", "1", 1))
	repo := db.NewRepository(store)

	cfg := &config.Config{}
	cfg.Workers.Summary.Count = 1
	cfg.Workers.Summary.RunAt = "23:59"

	w := NewSummaryWorker(cfg, summary.NewService(repo, time.UTC), nil)
	w.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }
	return w, repo
}

func TestHandleMessage(t *testing.T) {
	w, repo := newTestWorker(t)
	ctx := context.Background()
	w.workerPool.Start(ctx)

	require.NoError(t, w.handleMessage(ctx, []byte(`{"date":"2024-01-10"}`)))
	require.NoError(t, w.handleMessage(ctx, []byte(`{}`)))
	w.workerPool.Stop()

	rows, err := repo.Summaries(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	dates := []string{rows[0].Date, rows[1].Date}
	assert.ElementsMatch(t, []string{"2024-01-10", "2024-01-15"}, dates)
}

func TestHandleMessageRejectsBadJobs(t *testing.T) {
	w, _ := newTestWorker(t)
	ctx := context.Background()

	assert.Error(t, w.handleMessage(ctx, []byte(`not json`)))
	assert.Error(t, w.handleMessage(ctx, []byte(`{"date":"15/01/2024"}`)))

	// pool stopped: the job cannot be queued
	w.workerPool.Start(ctx)
	w.workerPool.Stop()
	assert.Error(t, w.handleMessage(ctx, []byte(`{"date":"2024-01-10"}`)))
}
