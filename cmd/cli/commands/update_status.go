package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hfmateus/meetingplanner/pkg/core/services"
	"github.com/hfmateus/meetingplanner/pkg/db"
)

// UpdateStatusCmd creates the updateStatus command
func UpdateStatusCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updateStatus <assignment_id> <status>",
		Short: "Confirm or decline an assignment (status: PENDING, CONFIRMED or DECLINED)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, _ := cmd.Flags().GetString("actor")
			var actorID *string
			if actor != "" {
				actorID = &actor
			}

			view, err := services.UpdateAssignmentStatus(app.Ctx, app.Database, app.Logger, args[0], db.Status(args[1]), actorID)
			if err != nil {
				return err
			}
			if view == nil {
				fmt.Println("Status stored, but the role has no participant assigned.")
				return nil
			}

			fmt.Printf("\n✓ Status updated\n\n")
			fmt.Printf("Assignment: %s\n", view.ID)
			fmt.Printf("Slot:       %s\n", view.SlotTitle)
			fmt.Printf("Status:     %s\n", view.Status)
			if view.SecondaryStatus != nil {
				fmt.Printf("Secondary:  %s\n", *view.SecondaryStatus)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("actor", "", "Participant id acting on the assignment (routes to primary or secondary)")

	return cmd
}
