package db

// Optional wraps a patch field so a caller can distinguish "not
// supplied" (leave the stored value untouched) from "supplied as
// zero or null" (write it). Updates are partial merges, so every
// patchable field goes through this wrapper.
type Optional[T any] struct {
	Valid bool
	Value T
}

// Set returns an Optional carrying v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{Valid: true, Value: v}
}

// WeekPatch describes a partial update to a week row plus, optionally,
// the client's full intended assignment list for that week. A nil
// Assignments slice pointer means the assignment set is untouched.
type WeekPatch struct {
	PresidingID     Optional[*string]
	PresidingStatus Optional[Status]
	PrayerStatus    Optional[Status]
	Type            Optional[string]
	Label           Optional[string]
	Assignments     *[]AssignmentInput
}

// HasWeekFields reports whether any week-row field is present in the patch.
func (p WeekPatch) HasWeekFields() bool {
	return p.PresidingID.Valid || p.PresidingStatus.Valid || p.PrayerStatus.Valid ||
		p.Type.Valid || p.Label.Valid
}

// AssignmentInput is one entry of a client-submitted assignment list,
// or the field set for a single assignment update. ID may be a
// persisted id or an unsaved placeholder ("new-..." / "virtual-...").
type AssignmentInput struct {
	ID              string
	TemplateID      string
	HolderID        Optional[*string]
	SecondaryID     Optional[*string]
	Status          Optional[Status]
	SecondaryStatus Optional[Status]
	Position        Optional[int]
	ThemeTitle      Optional[*string]
	Observation     Optional[*string]
	Duration        Optional[*int]
}
