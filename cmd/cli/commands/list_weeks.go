package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hfmateus/meetingplanner/pkg/core/services"
	"github.com/hfmateus/meetingplanner/pkg/db"
)

// ListWeeksCmd creates the listWeeks command
func ListWeeksCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listWeeks",
		Short: "List planned weeks with their assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromArg, _ := cmd.Flags().GetString("from")

			var weeks []db.Week
			var err error
			if fromArg != "" {
				from, parseErr := parseDate(fromArg)
				if parseErr != nil {
					return parseErr
				}
				weeks, err = app.Database.ListWeeksFrom(app.Ctx, from)
			} else {
				weeks, err = services.ListWeeks(app.Ctx, app.Database)
			}
			if err != nil {
				return err
			}

			if len(weeks) == 0 {
				fmt.Println("No weeks planned yet.")
				return nil
			}

			fmt.Printf("\nFound %d weeks:\n\n", len(weeks))
			for _, week := range weeks {
				fmt.Printf("%s  %s [%s]\n", week.StartDate.Format("2006-01-02"), week.Label, week.Type)
				fmt.Printf("  Presiding: %s\n", roleLine(week.PresidingID, week.PresidingStatus))
				fmt.Printf("  Prayer:    %s\n", roleLine(week.PrayerID, week.PrayerStatus))
				for _, a := range week.Assignments {
					fmt.Printf("  %2d. %s  %s\n", a.Position+1, a.TemplateTitle, assignmentLine(a))
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("from", "", "Only list weeks starting on or after this date (YYYY-MM-DD)")

	return cmd
}

func roleLine(participantID *string, status *db.Status) string {
	if participantID == nil {
		return "(unassigned)"
	}
	s := db.StatusPending
	if status != nil {
		s = *status
	}
	return fmt.Sprintf("%s [%s]", *participantID, s)
}

func assignmentLine(a db.Assignment) string {
	if a.HolderID == nil {
		return "(unassigned)"
	}
	line := fmt.Sprintf("%s [%s]", *a.HolderID, a.Status)
	if a.SecondaryID != nil {
		line += fmt.Sprintf(" + %s [%s]", *a.SecondaryID, a.SecondaryStatus)
	}
	return line
}
