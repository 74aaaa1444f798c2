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

const assignmentColumns = `a.id, a.week_id, a.template_id, t.title, a.holder_id, a.secondary_id,
	a.status, a.secondary_status, a.position, a.theme_title, a.observation, a.duration`

const assignmentRecordQuery = `
	SELECT ` + assignmentColumns + `, w.start_date, t.requires_reader, t.has_duration, hp.name, sp.name
	FROM assignment a
	JOIN week w ON w.id = a.week_id
	JOIN slot_template t ON t.id = a.template_id
	LEFT JOIN participant hp ON hp.id = a.holder_id
	LEFT JOIN participant sp ON sp.id = a.secondary_id`

func scanAssignment(row pgx.Row) (*db.Assignment, error) {
	var a db.Assignment
	var status, secondaryStatus string
	err := row.Scan(&a.ID, &a.WeekID, &a.TemplateID, &a.TemplateTitle, &a.HolderID, &a.SecondaryID,
		&status, &secondaryStatus, &a.Position, &a.ThemeTitle, &a.Observation, &a.Duration)
	if err != nil {
		return nil, err
	}
	a.Status = db.Status(status)
	a.SecondaryStatus = db.Status(secondaryStatus)
	return &a, nil
}

func scanAssignmentRecord(rows pgx.Rows) (*db.AssignmentRecord, error) {
	var rec db.AssignmentRecord
	var status, secondaryStatus string
	err := rows.Scan(&rec.ID, &rec.WeekID, &rec.TemplateID, &rec.TemplateTitle, &rec.HolderID, &rec.SecondaryID,
		&status, &secondaryStatus, &rec.Position, &rec.ThemeTitle, &rec.Observation, &rec.Duration,
		&rec.WeekStart, &rec.TemplateRequiresReader, &rec.TemplateHasDuration, &rec.HolderName, &rec.SecondaryName)
	if err != nil {
		return nil, err
	}
	rec.Status = db.Status(status)
	rec.SecondaryStatus = db.Status(secondaryStatus)
	rec.WeekStart = rec.WeekStart.UTC()
	return &rec, nil
}

// GetAssignment retrieves an assignment joined with its template title.
func (q *queries) GetAssignment(ctx context.Context, id string) (*db.Assignment, error) {
	row := q.q.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignment a
		JOIN slot_template t ON t.id = a.template_id
		WHERE a.id = $1
	`, id)
	a, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}
	return a, nil
}

// weekAssignments loads one week's assignments ordered by position.
func (q *queries) weekAssignments(ctx context.Context, weekID string) ([]db.Assignment, error) {
	records, err := q.assignmentsForWeeks(ctx, []string{weekID})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (q *queries) assignmentsForWeeks(ctx context.Context, weekIDs []string) ([]db.Assignment, error) {
	rows, err := q.q.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignment a
		JOIN slot_template t ON t.id = a.template_id
		WHERE a.week_id = ANY($1)
		ORDER BY a.week_id, a.position, a.id
	`, weekIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return assignments, nil
}

// InsertAssignments bulk-creates assignment rows.
func (q *queries) InsertAssignments(ctx context.Context, assignments []db.Assignment) error {
	for _, a := range assignments {
		_, err := q.q.Exec(ctx, `
			INSERT INTO assignment (id, week_id, template_id, holder_id, secondary_id,
				status, secondary_status, position, theme_title, observation, duration)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, a.ID, a.WeekID, a.TemplateID, a.HolderID, a.SecondaryID,
			string(a.Status), string(a.SecondaryStatus), a.Position, a.ThemeTitle, a.Observation, a.Duration)
		if err != nil {
			return fmt.Errorf("failed to insert assignment %s: %w", a.ID, translateError(err))
		}
	}
	return nil
}

// UpdateAssignment writes the fields present in input onto the row.
func (q *queries) UpdateAssignment(ctx context.Context, id string, input db.AssignmentInput) error {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.TemplateID != "" {
		add("template_id", input.TemplateID)
	}
	if input.HolderID.Valid {
		add("holder_id", input.HolderID.Value)
	}
	if input.SecondaryID.Valid {
		add("secondary_id", input.SecondaryID.Value)
	}
	if input.Status.Valid {
		add("status", string(input.Status.Value))
	}
	if input.SecondaryStatus.Valid {
		add("secondary_status", string(input.SecondaryStatus.Value))
	}
	if input.Position.Valid {
		add("position", input.Position.Value)
	}
	if input.ThemeTitle.Valid {
		add("theme_title", input.ThemeTitle.Value)
	}
	if input.Observation.Valid {
		add("observation", input.Observation.Value)
	}
	if input.Duration.Valid {
		add("duration", input.Duration.Value)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	sql := fmt.Sprintf(`UPDATE assignment SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	tag, err := q.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: assignment %s", db.ErrNotFound, id)
	}
	return nil
}

// DeleteAssignments removes every assignment in the id set.
func (q *queries) DeleteAssignments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := q.q.Exec(ctx, `DELETE FROM assignment WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}
	return nil
}

// RecentAssignments retrieves the participant's newest involvements,
// excluding the given week.
func (q *queries) RecentAssignments(ctx context.Context, participantID, excludeWeekID string, limit int) ([]db.AssignmentRecord, error) {
	return q.assignmentRecords(ctx, assignmentRecordQuery+`
		WHERE (a.holder_id = $1 OR a.secondary_id = $1)
		  AND a.week_id <> $2
		ORDER BY w.start_date DESC, a.id
		LIMIT $3
	`, participantID, excludeWeekID, limit)
}

// ListAssignmentsForParticipant retrieves the participant's involvements
// from the given date on, oldest first.
func (q *queries) ListAssignmentsForParticipant(ctx context.Context, participantID string, from time.Time) ([]db.AssignmentRecord, error) {
	return q.assignmentRecords(ctx, assignmentRecordQuery+`
		WHERE (a.holder_id = $1 OR a.secondary_id = $1)
		  AND w.start_date >= $2
		ORDER BY w.start_date, a.id
	`, participantID, from)
}

// ListAssignmentHistory retrieves every assignment with a non-declined
// holder, newest first with a stable id tiebreak.
func (q *queries) ListAssignmentHistory(ctx context.Context) ([]db.AssignmentRecord, error) {
	return q.assignmentRecords(ctx, assignmentRecordQuery+`
		WHERE a.status <> $1
		   OR (a.secondary_id IS NOT NULL AND a.secondary_status <> $1)
		ORDER BY w.start_date DESC, a.id
	`, string(db.StatusDeclined))
}

func (q *queries) assignmentRecords(ctx context.Context, sql string, args ...any) ([]db.AssignmentRecord, error) {
	rows, err := q.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment records: %w", err)
	}
	defer rows.Close()

	var records []db.AssignmentRecord
	for rows.Next() {
		rec, err := scanAssignmentRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment records: %w", err)
	}
	return records, nil
}
