package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

// ListWeeks returns every scheduled week chronologically, each with its
// assignments ordered by position.
func ListWeeks(ctx context.Context, store db.WeekStore) ([]db.Week, error) {
	weeks, err := store.ListWeeks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}
	return weeks, nil
}

// GetWeekByDate returns the week starting on the given date, or
// (nil, nil) when none exists. The date is normalized to midnight UTC
// before matching.
func GetWeekByDate(ctx context.Context, store db.WeekStore, date time.Time) (*db.Week, error) {
	week, err := store.GetWeekByDate(ctx, normalizeDate(date))
	if err != nil {
		return nil, fmt.Errorf("failed to look up week by date: %w", err)
	}
	return week, nil
}
