package db

import "time"

// Status is the confirmation state of an assignment holder.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusDeclined  Status = "DECLINED"
)

// Valid reports whether s is one of the known confirmation states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// Privilege is a participant's role class within the congregation.
type Privilege string

const (
	PrivilegeElder              Privilege = "elder"
	PrivilegeMinisterialServant Privilege = "ministerial_servant"
	PrivilegeMalePublisher      Privilege = "male_publisher"
	PrivilegeFemalePublisher    Privilege = "female_publisher"
)

// SlotTemplate is the reusable definition of a recurring agenda item.
// Templates are administrator-maintained reference data; the scheduling
// core only reads them.
type SlotTemplate struct {
	ID                string
	Title             string
	Section           string
	DefaultDuration   *int
	RequiresAssistant bool
	RequiresReader    bool
	HasDuration       bool
	Restriction       *Privilege
	Active            bool
	Position          int
}

// Week is one scheduled meeting week. The presiding and opening-prayer
// roles live directly on the week row rather than as assignments.
type Week struct {
	ID              string
	StartDate       time.Time
	Label           string
	Type            string
	PresidingID     *string
	PresidingStatus *Status
	PrayerID        *string
	PrayerStatus    *Status
	Assignments     []Assignment
}

// Assignment is one filled-or-pending slot within a week.
// TemplateTitle is populated on reads (joined from the slot template)
// and ignored on writes.
type Assignment struct {
	ID              string
	WeekID          string
	TemplateID      string
	TemplateTitle   string
	HolderID        *string
	SecondaryID     *string
	Status          Status
	SecondaryStatus Status
	Position        int
	ThemeTitle      *string
	Observation     *string
	Duration        *int
}

// Participant is a roster entry.
type Participant struct {
	ID            string
	Name          string
	Privilege     Privilege
	CanBeAssigned bool
	Phone         *string
	Email         *string
	UserID        *string
	Skills        []Skill
}

// Skill expresses a participant's eligibility for one slot template,
// optionally in the reader sub-role.
type Skill struct {
	ID            string
	ParticipantID string
	TemplateID    string
	IsReader      bool
}

// AssignmentRecord is an assignment joined with its week date, template
// flags and holder names. It is the read model for history scans and
// participant agendas.
type AssignmentRecord struct {
	Assignment
	WeekStart              time.Time
	TemplateRequiresReader bool
	TemplateHasDuration    bool
	HolderName             *string
	SecondaryName          *string
}
