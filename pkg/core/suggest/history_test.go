package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func statusPtr(s db.Status) *db.Status { return &s }

func TestEntriesFromAssignment_PrimaryAndReader(t *testing.T) {
	rec := db.AssignmentRecord{
		Assignment: db.Assignment{
			ID:              "a-1",
			TemplateID:      "tpl-reading",
			TemplateTitle:   "Bible Reading",
			HolderID:        strPtr("p-1"),
			SecondaryID:     strPtr("p-2"),
			Status:          db.StatusConfirmed,
			SecondaryStatus: db.StatusPending,
		},
		WeekStart:              date(2025, 3, 3),
		TemplateRequiresReader: true,
	}

	entries := EntriesFromAssignment(rec)

	require.Len(t, entries, 2)
	assert.Equal(t, "p-1", entries[0].ParticipantID)
	assert.Equal(t, "tpl-reading", entries[0].RoleKey)
	assert.Equal(t, "p-2", entries[1].ParticipantID)
	assert.Equal(t, "tpl-reading_reader", entries[1].RoleKey)
	assert.Equal(t, "Bible Reading (Reader)", entries[1].RoleLabel)
}

func TestEntriesFromAssignment_AssistantKey(t *testing.T) {
	rec := db.AssignmentRecord{
		Assignment: db.Assignment{
			ID:            "a-2",
			TemplateID:    "tpl-demo",
			TemplateTitle: "Initial Call",
			SecondaryID:   strPtr("p-3"),
		},
		WeekStart: date(2025, 3, 10),
	}

	entries := EntriesFromAssignment(rec)

	require.Len(t, entries, 1)
	assert.Equal(t, "tpl-demo_assistant", entries[0].RoleKey)
	assert.Equal(t, "Initial Call (Assistant)", entries[0].RoleLabel)
}

func TestEntriesFromAssignment_SkipsDeclined(t *testing.T) {
	rec := db.AssignmentRecord{
		Assignment: db.Assignment{
			ID:              "a-3",
			TemplateID:      "tpl-talk",
			HolderID:        strPtr("p-1"),
			SecondaryID:     strPtr("p-2"),
			Status:          db.StatusDeclined,
			SecondaryStatus: db.StatusConfirmed,
		},
		WeekStart: date(2025, 3, 17),
	}

	entries := EntriesFromAssignment(rec)

	require.Len(t, entries, 1)
	assert.Equal(t, "p-2", entries[0].ParticipantID)
}

func TestEntriesFromAssignment_ThemeTitleOverridesTemplateTitle(t *testing.T) {
	rec := db.AssignmentRecord{
		Assignment: db.Assignment{
			ID:            "a-4",
			TemplateID:    "tpl-talk",
			TemplateTitle: "Talk",
			ThemeTitle:    strPtr("How to Listen"),
			HolderID:      strPtr("p-1"),
		},
		WeekStart: date(2025, 3, 24),
	}

	entries := EntriesFromAssignment(rec)

	require.Len(t, entries, 1)
	assert.Equal(t, "How to Listen", entries[0].Title)
	assert.Equal(t, "Talk", entries[0].RoleLabel)
}

func TestEntriesFromWeek(t *testing.T) {
	week := db.Week{
		ID:              "wk-1",
		StartDate:       date(2025, 4, 7),
		PresidingID:     strPtr("p-1"),
		PresidingStatus: statusPtr(db.StatusConfirmed),
		PrayerID:        strPtr("p-2"),
		PrayerStatus:    statusPtr(db.StatusDeclined),
	}

	entries := EntriesFromWeek(week)

	require.Len(t, entries, 1)
	assert.Equal(t, RoleKeyPresident, entries[0].RoleKey)
	assert.Equal(t, "p-1", entries[0].ParticipantID)
}

func TestBuildIndex_MostRecentPerRoleKey(t *testing.T) {
	entries := []Entry{
		{ParticipantID: "p-1", RecordID: "a-1", Date: date(2025, 1, 6), RoleKey: "tpl-talk"},
		{ParticipantID: "p-1", RecordID: "a-2", Date: date(2025, 2, 3), RoleKey: "tpl-talk"},
		{ParticipantID: "p-1", RecordID: "a-3", Date: date(2025, 1, 20), RoleKey: "tpl-reading"},
		{ParticipantID: "p-2", RecordID: "a-4", Date: date(2025, 2, 10), RoleKey: RoleKeyPrayer},
	}

	index := BuildIndex(entries)

	require.Contains(t, index, "p-1")
	assert.Equal(t, date(2025, 2, 3), index["p-1"]["tpl-talk"])
	assert.Equal(t, date(2025, 1, 20), index["p-1"]["tpl-reading"])
	assert.Equal(t, date(2025, 2, 10), index["p-2"][RoleKeyPrayer])
}

func TestBuildIndex_StableAcrossInputOrder(t *testing.T) {
	// Two records on the same date for the same role key: the index must
	// come out the same regardless of slice order.
	a := Entry{ParticipantID: "p-1", RecordID: "a-1", Date: date(2025, 5, 5), RoleKey: "tpl-talk"}
	b := Entry{ParticipantID: "p-1", RecordID: "a-2", Date: date(2025, 5, 5), RoleKey: "tpl-talk"}

	first := BuildIndex([]Entry{a, b})
	second := BuildIndex([]Entry{b, a})

	assert.Equal(t, first, second)
}
