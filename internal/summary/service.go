package summary

import (
	"context"
	"time"

	"study-tracker/internal/db"
	"study-tracker/internal/logger"
	"study-tracker/internal/model"
	"study-tracker/internal/report"

	"github.com/rs/zerolog"
)

// Service fills the Summaries table with one row per student per day.
type Service struct {
	repo db.Repository
	loc  *time.Location
	log  zerolog.Logger
}

func NewService(repo db.Repository, loc *time.Location) *Service {
	return &Service{
		repo: repo,
		loc:  loc,
		log:  logger.For("summary"),
	}
}

// Today is now seen in the report timezone.
func (s *Service) Today(now time.Time) time.Time {
	return now.In(s.loc)
}

// ParseJobDate resolves the day a job targets; an empty date means today.
func (s *Service) ParseJobDate(job model.SummaryJob, now time.Time) (time.Time, error) {
	if job.Date == "" {
		return s.Today(now), nil
	}
	return report.ParseDate(job.Date, s.loc)
}

// BuildDaily writes the day's summary for every student that does not have
// one yet and returns how many rows were written.
func (s *Service) BuildDaily(ctx context.Context, day time.Time) (int, error) {
	date := day.Format(model.DateLayout)
	log := s.log.With().Str("date", date).Logger()

	students, err := s.repo.Students(ctx)
	if err != nil {
		return 0, err
	}
	logs, err := s.repo.StudyLogs(ctx)
	if err != nil {
		return 0, err
	}
	existing, err := s.repo.Summaries(ctx)
	if err != nil {
		return 0, err
	}

	done := make(map[string]bool)
	for _, row := range existing {
		if row.Date == date {
			done[row.Name] = true
		}
	}

	written := 0
	for _, student := range students {
		if done[student.Name] {
			log.Debug().Str("user", student.Name).Msg("Summary exists, skipping")
			continue
		}

		daily := report.DailyProgress(logs, student.Name, day, student.Goals)
		err := s.repo.AppendSummary(ctx, model.Summary{
			Date:        date,
			Name:        student.Name,
			Minutes:     daily.TotalMinutes,
			GoalMinutes: daily.GoalMinutes,
			Progress:    daily.Progress,
		})
		if err != nil {
			log.Error().Err(err).Str("user", student.Name).Msg("Failed to write summary")
			return written, err
		}
		done[student.Name] = true
		written++
	}

	log.Info().Int("written", written).Int("students", len(students)).Msg("Daily summaries built")
	return written, nil
}
