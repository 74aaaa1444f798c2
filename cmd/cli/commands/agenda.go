package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfmateus/meetingplanner/pkg/core/services"
)

// AgendaCmd creates the agenda command
func AgendaCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda <participant_id>",
		Short: "Show a participant's upcoming involvements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromArg, _ := cmd.Flags().GetString("from")
			from := time.Now().UTC().Truncate(24 * time.Hour)
			if fromArg != "" {
				parsed, err := parseDate(fromArg)
				if err != nil {
					return err
				}
				from = parsed
			}

			items, err := services.ParticipantAgenda(app.Ctx, app.Database, args[0], from)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("Nothing scheduled.")
				return nil
			}

			fmt.Printf("\n%d upcoming items:\n\n", len(items))
			for _, item := range items {
				fmt.Printf("  %s  %s: %s [%s]\n", item.Date.Format("2006-01-02"), item.RoleLabel, item.Title, item.Status)
				if item.PartnerName != nil {
					role := ""
					if item.PartnerRole != nil {
						role = fmt.Sprintf(" (%s)", *item.PartnerRole)
					}
					fmt.Printf("      with %s%s\n", *item.PartnerName, role)
				}
				if item.ShowDuration && item.Duration != nil {
					fmt.Printf("      %d min\n", *item.Duration)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD, defaults to today)")

	return cmd
}
