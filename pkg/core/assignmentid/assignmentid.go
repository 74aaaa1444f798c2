// Package assignmentid decodes the identifier scheme that multiplexes
// ordinary assignments, unsaved placeholder assignments and the two
// week-embedded roles behind one string id. Identifiers are parsed
// once at ingress into a tagged variant so the rest of the code never
// inspects prefixes.
package assignmentid

import (
	"fmt"
	"regexp"
	"strings"
)

// RoleKind identifies one of the two week-embedded special roles.
type RoleKind string

const (
	RolePresident RoleKind = "president"
	RolePrayer    RoleKind = "prayer"
)

type kind int

const (
	kindPersisted kind = iota
	kindPending
	kindVirtual
)

var virtualPattern = regexp.MustCompile(`^week-(.+)-(president|prayer)$`)

// ID is the decoded form of an assignment identifier. Exactly one of
// the three variants holds: a persisted assignment id, an unsaved
// placeholder, or a virtual reference to a week-embedded role.
type ID struct {
	kind   kind
	value  string
	weekID string
	role   RoleKind
}

// Parse decodes a raw identifier. Ids of shape "week-<weekId>-president"
// or "week-<weekId>-prayer" are virtual role references; ids prefixed
// "new-" or "virtual-" are unsaved placeholders; everything else is a
// persisted assignment id.
func Parse(raw string) ID {
	if m := virtualPattern.FindStringSubmatch(raw); m != nil {
		return ID{kind: kindVirtual, value: raw, weekID: m[1], role: RoleKind(m[2])}
	}
	if strings.HasPrefix(raw, "new-") || strings.HasPrefix(raw, "virtual-") {
		return ID{kind: kindPending, value: raw}
	}
	return ID{kind: kindPersisted, value: raw}
}

// VirtualID encodes a week-embedded role reference.
func VirtualID(weekID string, role RoleKind) string {
	return fmt.Sprintf("week-%s-%s", weekID, role)
}

// String returns the raw identifier.
func (id ID) String() string { return id.value }

// IsPending reports whether the id is an unsaved placeholder.
func (id ID) IsPending() bool { return id.kind == kindPending }

// Virtual returns the week id and role kind when the id is a virtual
// role reference.
func (id ID) Virtual() (weekID string, role RoleKind, ok bool) {
	if id.kind != kindVirtual {
		return "", "", false
	}
	return id.weekID, id.role, true
}
