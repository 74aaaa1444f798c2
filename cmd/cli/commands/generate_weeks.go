package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hfmateus/meetingplanner/pkg/core/services"
)

// GenerateWeeksCmd creates the generateWeeks command
func GenerateWeeksCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generateWeeks <month> <year>",
		Short: "Create a week for every Monday of the given month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("month must be a number: %w", err)
			}
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}

			weeks, err := services.GenerateWeeks(app.Ctx, app.Database, app.Logger, month, year)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %d weeks ready for %d-%02d\n\n", len(weeks), year, month)
			for _, week := range weeks {
				fmt.Printf("  %s  %s (%d parts)\n", week.StartDate.Format("2006-01-02"), week.Label, len(week.Assignments))
			}
			fmt.Println()

			return nil
		},
	}
}

// CreateWeekCmd creates the createWeek command
func CreateWeekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "createWeek <date>",
		Short: "Create a single week starting on the given date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}

			week, err := services.CreateWeek(app.Ctx, app.Database, app.Logger, date)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Week created\n\n")
			fmt.Printf("Week ID:    %s\n", week.ID)
			fmt.Printf("Start Date: %s\n", week.StartDate.Format("2006-01-02"))
			fmt.Printf("Label:      %s\n", week.Label)
			fmt.Printf("Parts:      %d\n\n", len(week.Assignments))

			return nil
		},
	}
}
