package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

func weekWithRoles() *db.Week {
	return &db.Week{
		ID:              "wk-1",
		StartDate:       date(2025, 12, 22),
		PresidingID:     strPtr("p-1"),
		PresidingStatus: statusPtr(db.StatusPending),
		PrayerID:        strPtr("p-2"),
		Assignments: []db.Assignment{
			{
				ID:              "a-1",
				WeekID:          "wk-1",
				TemplateID:      "tpl-reading",
				TemplateTitle:   "Bible Reading",
				HolderID:        strPtr("p-3"),
				SecondaryID:     strPtr("p-4"),
				Status:          db.StatusPending,
				SecondaryStatus: db.StatusPending,
			},
		},
	}
}

func TestGetAssignment_VirtualPresident(t *testing.T) {
	store := newMockDB()
	store.weeks = append(store.weeks, weekWithRoles())

	view, err := GetAssignment(context.Background(), store, "week-wk-1-president")

	require.NoError(t, err)
	require.NotNil(t, view)
	assert.True(t, view.Virtual)
	assert.Equal(t, "Presiding", view.SlotTitle)
	assert.Equal(t, "p-1", *view.HolderID)
	assert.Equal(t, db.StatusPending, view.Status)
	assert.Nil(t, view.SecondaryID)
	assert.Nil(t, view.SecondaryStatus)
}

func TestGetAssignment_VirtualPrayerDefaultsPending(t *testing.T) {
	store := newMockDB()
	store.weeks = append(store.weeks, weekWithRoles())

	view, err := GetAssignment(context.Background(), store, "week-wk-1-prayer")

	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "Opening Prayer", view.SlotTitle)
	assert.Equal(t, db.StatusPending, view.Status)
}

func TestGetAssignment_VirtualUnsetParticipant(t *testing.T) {
	store := newMockDB()
	week := weekWithRoles()
	week.PrayerID = nil
	store.weeks = append(store.weeks, week)

	view, err := GetAssignment(context.Background(), store, "week-wk-1-prayer")

	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestGetAssignment_VirtualMissingWeek(t *testing.T) {
	store := newMockDB()

	view, err := GetAssignment(context.Background(), store, "week-gone-president")

	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestGetAssignment_Ordinary(t *testing.T) {
	store := newMockDB()
	store.weeks = append(store.weeks, weekWithRoles())

	view, err := GetAssignment(context.Background(), store, "a-1")

	require.NoError(t, err)
	require.NotNil(t, view)
	assert.False(t, view.Virtual)
	assert.Equal(t, "Bible Reading", view.SlotTitle)
	assert.Equal(t, "p-4", *view.SecondaryID)
	require.NotNil(t, view.SecondaryStatus)
}

func TestUpdateAssignmentStatus_SecondaryActorUpdatesSecondaryOnly(t *testing.T) {
	store := newMockDB()
	store.weeks = append(store.weeks, weekWithRoles())

	view, err := UpdateAssignmentStatus(context.Background(), store, zap.NewNop(),
		"a-1", db.StatusConfirmed, strPtr("p-4"))

	require.NoError(t, err)
	require.NotNil(t, view.SecondaryStatus)
	assert.Equal(t, db.StatusConfirmed, *view.SecondaryStatus)
	assert.Equal(t, db.StatusPending, view.Status)

	inputs := store.updatedAssignments["a-1"]
	require.Len(t, inputs, 1)
	assert.True(t, inputs[0].SecondaryStatus.Valid)
	assert.False(t, inputs[0].Status.Valid)
}

func TestUpdateAssignmentStatus_NoActorUpdatesPrimary(t *testing.T) {
	store := newMockDB()
	store.weeks = append(store.weeks, weekWithRoles())

	view, err := UpdateAssignmentStatus(context.Background(), store, zap.NewNop(),
		"a-1", db.StatusDeclined, nil)

	require.NoError(t, err)
	assert.Equal(t, db.StatusDeclined, view.Status)
	assert.Equal(t, db.StatusPending, *view.SecondaryStatus)
}

func TestUpdateAssignmentStatus_UnknownActorFallsBackToPrimary(t *testing.T) {
	store := newMockDB()
	store.weeks = append(store.weeks, weekWithRoles())

	view, err := UpdateAssignmentStatus(context.Background(), store, zap.NewNop(),
		"a-1", db.StatusConfirmed, strPtr("p-stranger"))

	require.NoError(t, err)
	assert.Equal(t, db.StatusConfirmed, view.Status)
	assert.Equal(t, db.StatusPending, *view.SecondaryStatus)
}

func TestUpdateAssignmentStatus_VirtualMutatesWeekOnly(t *testing.T) {
	store := newMockDB()
	store.weeks = append(store.weeks, weekWithRoles())

	view, err := UpdateAssignmentStatus(context.Background(), store, zap.NewNop(),
		"week-wk-1-president", db.StatusConfirmed, nil)

	require.NoError(t, err)
	assert.True(t, view.Virtual)
	assert.Equal(t, db.StatusConfirmed, view.Status)

	// The week row changed, and no assignment row was touched
	week, _ := store.GetWeek(context.Background(), "wk-1")
	require.NotNil(t, week.PresidingStatus)
	assert.Equal(t, db.StatusConfirmed, *week.PresidingStatus)
	assert.Nil(t, week.PrayerStatus)
	assert.Empty(t, store.updatedAssignments)
	assert.Empty(t, store.insertedAssignments)

	patches := store.weekFieldPatches["wk-1"]
	require.Len(t, patches, 1)
	assert.True(t, patches[0].PresidingStatus.Valid)
	assert.False(t, patches[0].PrayerStatus.Valid)
}

func TestUpdateAssignmentStatus_NotFound(t *testing.T) {
	store := newMockDB()

	_, err := UpdateAssignmentStatus(context.Background(), store, zap.NewNop(),
		"missing", db.StatusConfirmed, nil)
	assert.ErrorIs(t, err, db.ErrNotFound)

	_, err = UpdateAssignmentStatus(context.Background(), store, zap.NewNop(),
		"week-missing-prayer", db.StatusConfirmed, nil)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestUpdateAssignmentStatus_InvalidStatus(t *testing.T) {
	store := newMockDB()

	_, err := UpdateAssignmentStatus(context.Background(), store, zap.NewNop(),
		"a-1", db.Status("SOMETIME"), nil)

	assert.ErrorIs(t, err, db.ErrInvalidInput)
}
