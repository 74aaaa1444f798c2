package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestBuildCandidate_Recencies(t *testing.T) {
	p := db.Participant{
		ID:            "p-1",
		Name:          "Carlos",
		Privilege:     db.PrivilegeElder,
		CanBeAssigned: true,
		Skills: []db.Skill{
			{TemplateID: "tpl-talk"},
			{TemplateID: "tpl-reading", IsReader: true},
		},
	}
	entries := []Entry{
		{ParticipantID: "p-1", RecordID: "a-1", Date: date(2025, 1, 6), RoleKey: "tpl-talk", RoleLabel: "Talk", Title: "Talk"},
		{ParticipantID: "p-1", RecordID: "a-2", Date: date(2025, 2, 3), RoleKey: "tpl-reading", RoleLabel: "Bible Reading", Title: "Bible Reading"},
		{ParticipantID: "p-1", RecordID: "a-3", Date: date(2025, 1, 20), RoleKey: "tpl-talk", RoleLabel: "Talk", Title: "Talk"},
	}

	c := BuildCandidate(p, entries, "tpl-talk")

	require.NotNil(t, c.GeneralLastDate)
	assert.Equal(t, date(2025, 2, 3), *c.GeneralLastDate)
	require.NotNil(t, c.SpecificLastDate)
	assert.Equal(t, date(2025, 1, 20), *c.SpecificLastDate)
	assert.Equal(t, []string{"tpl-reading_reader", "tpl-talk"}, c.Abilities)
	assert.Equal(t, "male", c.Gender)

	// History is newest first
	require.Len(t, c.History, 3)
	assert.Equal(t, date(2025, 2, 3), c.History[0].Date)
}

func TestBuildCandidate_NeverAssignedSlot(t *testing.T) {
	p := db.Participant{ID: "p-2", Name: "Ana", Privilege: db.PrivilegeFemalePublisher}
	entries := []Entry{
		{ParticipantID: "p-2", RecordID: "a-9", Date: date(2025, 3, 3), RoleKey: "tpl-demo"},
	}

	c := BuildCandidate(p, entries, "tpl-talk")

	assert.Nil(t, c.SpecificLastDate)
	require.NotNil(t, c.GeneralLastDate)
	assert.Equal(t, "female", c.Gender)
}

func TestBuildCandidate_HistoryCappedAtThree(t *testing.T) {
	p := db.Participant{ID: "p-3", Name: "Joel"}
	entries := []Entry{
		{ParticipantID: "p-3", RecordID: "a-1", Date: date(2025, 1, 6), RoleKey: "k"},
		{ParticipantID: "p-3", RecordID: "a-2", Date: date(2025, 1, 13), RoleKey: "k"},
		{ParticipantID: "p-3", RecordID: "a-3", Date: date(2025, 1, 20), RoleKey: "k"},
		{ParticipantID: "p-3", RecordID: "a-4", Date: date(2025, 1, 27), RoleKey: "k"},
	}

	c := BuildCandidate(p, entries, "k")

	require.Len(t, c.History, 3)
	assert.Equal(t, date(2025, 1, 27), c.History[0].Date)
	assert.Equal(t, date(2025, 1, 13), c.History[2].Date)
}

func TestRank_NeverAssignedFirst(t *testing.T) {
	candidates := []Candidate{
		{ID: "p-1", Name: "Aldo", SpecificLastDate: timePtr(date(2025, 1, 6)), GeneralLastDate: timePtr(date(2025, 1, 6))},
		{ID: "p-2", Name: "Zeca", GeneralLastDate: timePtr(date(2025, 6, 2))},
	}

	Rank(candidates)

	// No specific history beats any specific history, however recent
	// the other involvement
	assert.Equal(t, "p-2", candidates[0].ID)
	assert.Equal(t, "p-1", candidates[1].ID)
}

func TestRank_SpecificThenGeneral(t *testing.T) {
	candidates := []Candidate{
		{ID: "p-1", Name: "A", SpecificLastDate: timePtr(date(2025, 3, 3)), GeneralLastDate: timePtr(date(2025, 3, 3))},
		{ID: "p-2", Name: "B", SpecificLastDate: timePtr(date(2025, 1, 6)), GeneralLastDate: timePtr(date(2025, 5, 5))},
		{ID: "p-3", Name: "C", SpecificLastDate: timePtr(date(2025, 1, 6)), GeneralLastDate: timePtr(date(2025, 2, 3))},
	}

	Rank(candidates)

	assert.Equal(t, "p-3", candidates[0].ID)
	assert.Equal(t, "p-2", candidates[1].ID)
	assert.Equal(t, "p-1", candidates[2].ID)
}

func TestRank_DeterministicTieBreak(t *testing.T) {
	build := func() []Candidate {
		return []Candidate{
			{ID: "p-2", Name: "Bruno"},
			{ID: "p-1", Name: "Bruno"},
			{ID: "p-3", Name: "Abel"},
		}
	}

	first := build()
	Rank(first)
	second := []Candidate{first[1], first[2], first[0]}
	Rank(second)

	assert.Equal(t, first, second)
	assert.Equal(t, "p-3", first[0].ID)
	assert.Equal(t, "p-1", first[1].ID)
	assert.Equal(t, "p-2", first[2].ID)
}

func TestEligibility(t *testing.T) {
	elder := db.Participant{Privilege: db.PrivilegeElder}
	servant := db.Participant{Privilege: db.PrivilegeMinisterialServant}
	malePub := db.Participant{Privilege: db.PrivilegeMalePublisher}
	femalePub := db.Participant{Privilege: db.PrivilegeFemalePublisher}

	assert.True(t, EligibleForPresident(elder))
	assert.False(t, EligibleForPresident(servant))
	assert.False(t, EligibleForPresident(malePub))

	assert.True(t, EligibleForPrayer(elder))
	assert.True(t, EligibleForPrayer(servant))
	assert.True(t, EligibleForPrayer(malePub))
	assert.False(t, EligibleForPrayer(femalePub))
}

func TestHasSkill(t *testing.T) {
	p := db.Participant{Skills: []db.Skill{{TemplateID: "tpl-reading", IsReader: true}}}

	assert.True(t, HasSkill(p, "tpl-reading"))
	assert.False(t, HasSkill(p, "tpl-talk"))
}
