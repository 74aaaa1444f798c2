package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

// DefaultWeekType is assigned to weeks created by the generator.
const DefaultWeekType = "regular"

// defaultSlotDuration is used when a template carries no default duration.
const defaultSlotDuration = 5

// GenerateWeeks creates one week per Monday of the target month, each
// pre-populated with a pending assignment per active slot template.
// Weeks that already exist for a Monday are left untouched, so
// re-running for the same month never duplicates anything. The
// returned slice holds every week of the month, existing and new,
// in chronological order.
func GenerateWeeks(ctx context.Context, database db.Database, logger *zap.Logger, month, year int) ([]db.Week, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", db.ErrInvalidInput, month)
	}
	if year < 1 {
		return nil, fmt.Errorf("%w: year %d out of range", db.ErrInvalidInput, year)
	}

	logger.Debug("Generating weeks", zap.Int("month", month), zap.Int("year", year))

	templates, err := database.ListSlotTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list slot templates: %w", err)
	}

	mondays, err := mondaysOfMonth(month, year)
	if err != nil {
		return nil, err
	}

	weeks := make([]db.Week, 0, len(mondays))
	for _, monday := range mondays {
		week, err := ensureWeek(ctx, database, logger, monday, templates)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, *week)
	}

	logger.Info("Weeks generated",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("week_count", len(weeks)))

	return weeks, nil
}

// CreateWeek creates a single week for an explicit date, with the same
// per-week logic the month generator uses. The date is normalized to
// midnight UTC before matching against existing weeks.
func CreateWeek(ctx context.Context, database db.Database, logger *zap.Logger, date time.Time) (*db.Week, error) {
	templates, err := database.ListSlotTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list slot templates: %w", err)
	}

	start := normalizeDate(date)
	return ensureWeek(ctx, database, logger, start, templates)
}

// ensureWeek returns the existing week for start or creates it with its
// generated assignment set inside one transaction. A start-date
// conflict means a concurrent caller created the week first; it is
// re-read and returned as success.
func ensureWeek(ctx context.Context, database db.Database, logger *zap.Logger, start time.Time, templates []db.SlotTemplate) (*db.Week, error) {
	existing, err := database.GetWeekByDate(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to look up week: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	week := buildWeek(start, templates)
	err = database.InTx(ctx, func(s db.Store) error {
		return s.InsertWeek(ctx, week)
	})
	if errors.Is(err, db.ErrConflict) {
		logger.Debug("Week already exists, re-reading", zap.Time("start", start))
		existing, err := database.GetWeekByDate(ctx, start)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read week after conflict: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: week for %s vanished after conflict", db.ErrNotFound, start.Format("2006-01-02"))
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create week: %w", err)
	}

	logger.Info("Week created",
		zap.String("week_id", week.ID),
		zap.Time("start", start),
		zap.Int("assignment_count", len(week.Assignments)))

	return week, nil
}

// buildWeek assembles a new week with one pending assignment per template.
func buildWeek(start time.Time, templates []db.SlotTemplate) *db.Week {
	week := &db.Week{
		ID:        uuid.New().String(),
		StartDate: start,
		Label:     weekLabel(start),
		Type:      DefaultWeekType,
	}

	for i, tpl := range templates {
		duration := defaultSlotDuration
		if tpl.DefaultDuration != nil {
			duration = *tpl.DefaultDuration
		}
		d := duration
		week.Assignments = append(week.Assignments, db.Assignment{
			ID:              uuid.New().String(),
			WeekID:          week.ID,
			TemplateID:      tpl.ID,
			TemplateTitle:   tpl.Title,
			Status:          db.StatusPending,
			SecondaryStatus: db.StatusPending,
			Position:        i,
			Duration:        &d,
		})
	}

	return week
}

// mondaysOfMonth returns every Monday of the month at midnight UTC.
func mondaysOfMonth(month, year int) ([]time.Time, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.MO},
		Dtstart:   first,
		Until:     last,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build monday recurrence: %w", err)
	}

	return r.All(), nil
}

// weekLabel renders the human-readable date range of a week.
func weekLabel(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	if start.Month() == end.Month() {
		return fmt.Sprintf("%d-%d %s", start.Day(), end.Day(), start.Month())
	}
	return fmt.Sprintf("%d %s - %d %s", start.Day(), start.Month(), end.Day(), end.Month())
}

// normalizeDate truncates a timestamp to midnight UTC so week matching
// is by calendar day.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
