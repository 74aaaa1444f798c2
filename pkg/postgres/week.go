package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

const weekColumns = `id, start_date, label, week_type, presiding_id, presiding_status, prayer_id, prayer_status`

func scanWeek(row pgx.Row) (*db.Week, error) {
	var w db.Week
	var presidingStatus, prayerStatus *string
	err := row.Scan(&w.ID, &w.StartDate, &w.Label, &w.Type,
		&w.PresidingID, &presidingStatus, &w.PrayerID, &prayerStatus)
	if err != nil {
		return nil, err
	}
	w.StartDate = w.StartDate.UTC()
	if presidingStatus != nil {
		s := db.Status(*presidingStatus)
		w.PresidingStatus = &s
	}
	if prayerStatus != nil {
		s := db.Status(*prayerStatus)
		w.PrayerStatus = &s
	}
	return &w, nil
}

// GetWeek retrieves a week with its assignments ordered by position.
func (q *queries) GetWeek(ctx context.Context, id string) (*db.Week, error) {
	row := q.q.QueryRow(ctx, `SELECT `+weekColumns+` FROM week WHERE id = $1`, id)
	week, err := scanWeek(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query week: %w", err)
	}

	assignments, err := q.weekAssignments(ctx, week.ID)
	if err != nil {
		return nil, err
	}
	week.Assignments = assignments
	return week, nil
}

// GetWeekByDate retrieves the week starting exactly on date.
func (q *queries) GetWeekByDate(ctx context.Context, date time.Time) (*db.Week, error) {
	row := q.q.QueryRow(ctx, `SELECT `+weekColumns+` FROM week WHERE start_date = $1`, date)
	week, err := scanWeek(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query week by date: %w", err)
	}

	assignments, err := q.weekAssignments(ctx, week.ID)
	if err != nil {
		return nil, err
	}
	week.Assignments = assignments
	return week, nil
}

// ListWeeks retrieves all weeks chronologically with their assignments.
func (q *queries) ListWeeks(ctx context.Context) ([]db.Week, error) {
	return q.listWeeks(ctx, `SELECT `+weekColumns+` FROM week ORDER BY start_date`)
}

// ListWeeksFrom retrieves weeks starting on or after from, chronologically.
func (q *queries) ListWeeksFrom(ctx context.Context, from time.Time) ([]db.Week, error) {
	return q.listWeeks(ctx, `SELECT `+weekColumns+` FROM week WHERE start_date >= $1 ORDER BY start_date`, from)
}

func (q *queries) listWeeks(ctx context.Context, sql string, args ...any) ([]db.Week, error) {
	rows, err := q.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weeks: %w", err)
	}
	defer rows.Close()

	var weeks []db.Week
	byID := make(map[string]int)
	for rows.Next() {
		week, err := scanWeek(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		byID[week.ID] = len(weeks)
		weeks = append(weeks, *week)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weeks: %w", err)
	}
	rows.Close()

	if len(weeks) == 0 {
		return weeks, nil
	}

	ids := make([]string, len(weeks))
	for i, w := range weeks {
		ids[i] = w.ID
	}
	assignments, err := q.assignmentsForWeeks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		i := byID[a.WeekID]
		weeks[i].Assignments = append(weeks[i].Assignments, a)
	}
	return weeks, nil
}

// InsertWeek creates a week together with its assignments. A start-date
// collision surfaces as db.ErrConflict.
func (q *queries) InsertWeek(ctx context.Context, week *db.Week) error {
	_, err := q.q.Exec(ctx, `
		INSERT INTO week (id, start_date, label, week_type, presiding_id, presiding_status, prayer_id, prayer_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, week.ID, week.StartDate, week.Label, week.Type,
		week.PresidingID, statusText(week.PresidingStatus), week.PrayerID, statusText(week.PrayerStatus))
	if err != nil {
		return fmt.Errorf("failed to insert week: %w", translateError(err))
	}

	return q.InsertAssignments(ctx, week.Assignments)
}

// UpdateWeekFields writes the week-row fields present in patch.
func (q *queries) UpdateWeekFields(ctx context.Context, id string, patch db.WeekPatch) error {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.PresidingID.Valid {
		add("presiding_id", patch.PresidingID.Value)
	}
	if patch.PresidingStatus.Valid {
		add("presiding_status", string(patch.PresidingStatus.Value))
	}
	if patch.PrayerStatus.Valid {
		add("prayer_status", string(patch.PrayerStatus.Value))
	}
	if patch.Type.Valid {
		add("week_type", patch.Type.Value)
	}
	if patch.Label.Valid {
		add("label", patch.Label.Value)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	sql := fmt.Sprintf(`UPDATE week SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	tag, err := q.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update week: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: week %s", db.ErrNotFound, id)
	}
	return nil
}

// RecentPresidingWeeks retrieves the newest weeks holding a non-declined
// presiding participant. Assignments are not loaded.
func (q *queries) RecentPresidingWeeks(ctx context.Context, limit int) ([]db.Week, error) {
	rows, err := q.q.Query(ctx, `
		SELECT `+weekColumns+`
		FROM week
		WHERE presiding_id IS NOT NULL
		  AND (presiding_status IS NULL OR presiding_status <> $1)
		ORDER BY start_date DESC, id
		LIMIT $2
	`, string(db.StatusDeclined), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query presiding weeks: %w", err)
	}
	defer rows.Close()

	var weeks []db.Week
	for rows.Next() {
		week, err := scanWeek(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		weeks = append(weeks, *week)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating presiding weeks: %w", err)
	}
	return weeks, nil
}

func statusText(s *db.Status) *string {
	if s == nil {
		return nil
	}
	text := string(*s)
	return &text
}
