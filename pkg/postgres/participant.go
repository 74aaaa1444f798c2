package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

const participantColumns = `id, name, privilege, can_be_assigned, phone, email, user_id`

func scanParticipant(row pgx.Row) (*db.Participant, error) {
	var p db.Participant
	var privilege string
	err := row.Scan(&p.ID, &p.Name, &privilege, &p.CanBeAssigned, &p.Phone, &p.Email, &p.UserID)
	if err != nil {
		return nil, err
	}
	p.Privilege = db.Privilege(privilege)
	return &p, nil
}

// GetParticipant retrieves a roster entry with its skills.
func (q *queries) GetParticipant(ctx context.Context, id string) (*db.Participant, error) {
	row := q.q.QueryRow(ctx, `SELECT `+participantColumns+` FROM participant WHERE id = $1`, id)
	p, err := scanParticipant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query participant: %w", err)
	}

	skills, err := q.participantSkills(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Skills = skills[p.ID]
	return p, nil
}

// ListParticipants retrieves the full roster with skills, ordered by name.
func (q *queries) ListParticipants(ctx context.Context) ([]db.Participant, error) {
	rows, err := q.q.Query(ctx, `SELECT `+participantColumns+` FROM participant ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []db.Participant
	var ids []string
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, *p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}
	rows.Close()

	if len(participants) == 0 {
		return participants, nil
	}

	skills, err := q.participantSkills(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range participants {
		participants[i].Skills = skills[participants[i].ID]
	}
	return participants, nil
}

func (q *queries) participantSkills(ctx context.Context, participantIDs []string) (map[string][]db.Skill, error) {
	rows, err := q.q.Query(ctx, `
		SELECT id, participant_id, template_id, is_reader
		FROM skill
		WHERE participant_id = ANY($1)
		ORDER BY participant_id, template_id, is_reader
	`, participantIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	skills := make(map[string][]db.Skill)
	for rows.Next() {
		var s db.Skill
		if err := rows.Scan(&s.ID, &s.ParticipantID, &s.TemplateID, &s.IsReader); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills[s.ParticipantID] = append(skills[s.ParticipantID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skills: %w", err)
	}
	return skills, nil
}
