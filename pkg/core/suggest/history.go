// Package suggest contains the pure scheduling-history logic: merging
// heterogeneous historical records into per-participant recency data
// and ranking eligible candidates for a slot. It performs no I/O; the
// services layer loads the records and discards the built index after
// each call.
package suggest

import (
	"sort"
	"time"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

// Role keys for the two week-embedded roles. Ordinary slots use their
// template id as role key, with a "_reader" or "_assistant" suffix for
// the secondary sub-role.
const (
	RoleKeyPresident = "president"
	RoleKeyPrayer    = "prayer"
)

// Slot titles synthesized for the week-embedded roles.
const (
	PresidentSlotTitle = "Presiding"
	PrayerSlotTitle    = "Opening Prayer"
)

// SecondaryKey returns the role key for the secondary sub-role of a
// template: reader when the template requires a reader, assistant
// otherwise.
func SecondaryKey(templateID string, requiresReader bool) string {
	if requiresReader {
		return templateID + "_reader"
	}
	return templateID + "_assistant"
}

// Entry is one historical involvement of a participant, normalized
// across the three record shapes (primary assignment, secondary
// assignment, week-embedded role).
type Entry struct {
	ParticipantID string
	RecordID      string
	Date          time.Time
	RoleKey       string
	RoleLabel     string
	Title         string
}

// EntriesFromAssignment expands an assignment record into history
// entries, one per non-declined holder.
func EntriesFromAssignment(rec db.AssignmentRecord) []Entry {
	title := rec.TemplateTitle
	if rec.ThemeTitle != nil && *rec.ThemeTitle != "" {
		title = *rec.ThemeTitle
	}

	var entries []Entry
	if rec.HolderID != nil && rec.Status != db.StatusDeclined {
		entries = append(entries, Entry{
			ParticipantID: *rec.HolderID,
			RecordID:      rec.ID,
			Date:          rec.WeekStart,
			RoleKey:       rec.TemplateID,
			RoleLabel:     rec.TemplateTitle,
			Title:         title,
		})
	}
	if rec.SecondaryID != nil && rec.SecondaryStatus != db.StatusDeclined {
		label := rec.TemplateTitle + " (Assistant)"
		if rec.TemplateRequiresReader {
			label = rec.TemplateTitle + " (Reader)"
		}
		entries = append(entries, Entry{
			ParticipantID: *rec.SecondaryID,
			RecordID:      rec.ID + "/secondary",
			Date:          rec.WeekStart,
			RoleKey:       SecondaryKey(rec.TemplateID, rec.TemplateRequiresReader),
			RoleLabel:     label,
			Title:         title,
		})
	}
	return entries
}

// EntriesFromWeek expands a week's special roles into history entries,
// skipping declined or unset holders.
func EntriesFromWeek(week db.Week) []Entry {
	var entries []Entry
	if week.PresidingID != nil && !statusDeclined(week.PresidingStatus) {
		entries = append(entries, Entry{
			ParticipantID: *week.PresidingID,
			RecordID:      week.ID + "/president",
			Date:          week.StartDate,
			RoleKey:       RoleKeyPresident,
			RoleLabel:     PresidentSlotTitle,
			Title:         PresidentSlotTitle,
		})
	}
	if week.PrayerID != nil && !statusDeclined(week.PrayerStatus) {
		entries = append(entries, Entry{
			ParticipantID: *week.PrayerID,
			RecordID:      week.ID + "/prayer",
			Date:          week.StartDate,
			RoleKey:       RoleKeyPrayer,
			RoleLabel:     PrayerSlotTitle,
			Title:         PrayerSlotTitle,
		})
	}
	return entries
}

func statusDeclined(s *db.Status) bool {
	return s != nil && *s == db.StatusDeclined
}

// BuildIndex folds history entries into participantID -> roleKey ->
// most recent date. Entries are walked in descending date order with a
// stable record-id tiebreak, and only the first occurrence per role
// key is kept, so repeated calls over the same records produce the
// same index.
func BuildIndex(entries []Entry) map[string]map[string]time.Time {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].RecordID < sorted[j].RecordID
	})

	index := make(map[string]map[string]time.Time)
	for _, e := range sorted {
		roles, ok := index[e.ParticipantID]
		if !ok {
			roles = make(map[string]time.Time)
			index[e.ParticipantID] = roles
		}
		if _, seen := roles[e.RoleKey]; !seen {
			roles[e.RoleKey] = e.Date
		}
	}
	return index
}
