package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

const slotTemplateColumns = `id, title, section, default_duration, requires_assistant,
	requires_reader, has_duration, restriction, active, position`

func scanSlotTemplate(row pgx.Row) (*db.SlotTemplate, error) {
	var t db.SlotTemplate
	var restriction *string
	err := row.Scan(&t.ID, &t.Title, &t.Section, &t.DefaultDuration, &t.RequiresAssistant,
		&t.RequiresReader, &t.HasDuration, &restriction, &t.Active, &t.Position)
	if err != nil {
		return nil, err
	}
	if restriction != nil {
		r := db.Privilege(*restriction)
		t.Restriction = &r
	}
	return &t, nil
}

// ListSlotTemplates retrieves active templates ordered by position.
func (q *queries) ListSlotTemplates(ctx context.Context) ([]db.SlotTemplate, error) {
	rows, err := q.q.Query(ctx, `
		SELECT `+slotTemplateColumns+`
		FROM slot_template
		WHERE active
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query slot templates: %w", err)
	}
	defer rows.Close()

	var templates []db.SlotTemplate
	for rows.Next() {
		t, err := scanSlotTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot template: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot templates: %w", err)
	}
	return templates, nil
}

// GetSlotTemplate retrieves one template, active or not.
func (q *queries) GetSlotTemplate(ctx context.Context, id string) (*db.SlotTemplate, error) {
	row := q.q.QueryRow(ctx, `SELECT `+slotTemplateColumns+` FROM slot_template WHERE id = $1`, id)
	t, err := scanSlotTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query slot template: %w", err)
	}
	return t, nil
}
