package suggest

import (
	"sort"
	"time"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

// maxHistoryEntries caps the history shown per candidate.
const maxHistoryEntries = 3

// HistoryEntry is one line of a candidate's recent history.
type HistoryEntry struct {
	Date      time.Time
	RoleKey   string
	RoleLabel string
	Title     string
}

// Candidate is one ranked suggestion for a slot.
type Candidate struct {
	ID               string
	Name             string
	Privilege        db.Privilege
	Gender           string
	Active           bool
	Abilities        []string
	SpecificLastDate *time.Time
	GeneralLastDate  *time.Time
	History          []HistoryEntry
}

// EligibleForPresident reports whether the participant may preside.
func EligibleForPresident(p db.Participant) bool {
	return p.Privilege == db.PrivilegeElder
}

// EligibleForPrayer reports whether the participant may offer the
// opening prayer.
func EligibleForPrayer(p db.Participant) bool {
	switch p.Privilege {
	case db.PrivilegeElder, db.PrivilegeMinisterialServant, db.PrivilegeMalePublisher:
		return true
	}
	return false
}

// HasSkill reports whether the participant holds a skill for the template.
func HasSkill(p db.Participant, templateID string) bool {
	for _, s := range p.Skills {
		if s.TemplateID == templateID {
			return true
		}
	}
	return false
}

// Gender infers the display gender from the privilege class.
func Gender(p db.Participant) string {
	if p.Privilege == db.PrivilegeFemalePublisher {
		return "female"
	}
	return "male"
}

// Abilities flattens the participant's skills into role keys.
func Abilities(p db.Participant) []string {
	abilities := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s.IsReader {
			abilities = append(abilities, s.TemplateID+"_reader")
		} else {
			abilities = append(abilities, s.TemplateID)
		}
	}
	sort.Strings(abilities)
	return abilities
}

// BuildCandidate merges a participant's history entries into one
// candidate: entries are ordered by date descending, the most recent
// date of any involvement becomes the general recency, and the most
// recent entry matching roleKey becomes the specific recency. A
// participant never assigned the requested role has no specific date.
func BuildCandidate(p db.Participant, entries []Entry, roleKey string) Candidate {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].RecordID < sorted[j].RecordID
	})

	c := Candidate{
		ID:        p.ID,
		Name:      p.Name,
		Privilege: p.Privilege,
		Gender:    Gender(p),
		Active:    p.CanBeAssigned,
		Abilities: Abilities(p),
	}

	for _, e := range sorted {
		if c.GeneralLastDate == nil {
			d := e.Date
			c.GeneralLastDate = &d
		}
		if c.SpecificLastDate == nil && e.RoleKey == roleKey {
			d := e.Date
			c.SpecificLastDate = &d
		}
		if len(c.History) < maxHistoryEntries {
			c.History = append(c.History, HistoryEntry{
				Date:      e.Date,
				RoleKey:   e.RoleKey,
				RoleLabel: e.RoleLabel,
				Title:     e.Title,
			})
		}
	}
	return c
}

// Rank orders candidates for presentation: ascending by specific
// recency with never-assigned first, ties broken by ascending general
// recency, then by name and id so the order is deterministic across
// calls.
func Rank(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if c := compareDates(candidates[i].SpecificLastDate, candidates[j].SpecificLastDate); c != 0 {
			return c < 0
		}
		if c := compareDates(candidates[i].GeneralLastDate, candidates[j].GeneralLastDate); c != 0 {
			return c < 0
		}
		if candidates[i].Name != candidates[j].Name {
			return candidates[i].Name < candidates[j].Name
		}
		return candidates[i].ID < candidates[j].ID
	})
}

// compareDates orders nil (never assigned) before any date, then
// earlier dates before later ones.
func compareDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	}
	return 0
}
