package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hfmateus/meetingplanner/pkg/core/services"
)

// SuggestCmd creates the suggest command
func SuggestCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <week> <slot>",
		Short: "Rank candidates for a slot (week by id or date, slot by template id, 'president' or 'prayer')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := services.SuggestCandidates(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			if len(candidates) == 0 {
				fmt.Println("No eligible candidates.")
				return nil
			}

			fmt.Printf("\n%d candidates, best first:\n\n", len(candidates))
			for i, c := range candidates {
				fmt.Printf("  %2d. %s (%s)\n", i+1, c.Name, c.ID)
				if c.SpecificLastDate != nil {
					fmt.Printf("      last in this slot: %s\n", c.SpecificLastDate.Format("2006-01-02"))
				} else {
					fmt.Printf("      never held this slot\n")
				}
				for _, h := range c.History {
					fmt.Printf("      %s  %s\n", h.Date.Format("2006-01-02"), h.Title)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

// SuggestionIndexCmd creates the suggestionIndex command
func SuggestionIndexCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "suggestionIndex",
		Short: "Show each participant's skills and last-held dates per role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := services.SuggestionIndex(app.Ctx, app.Database)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d participants:\n\n", len(entries))
			for _, e := range entries {
				fmt.Printf("%s (%s, %s)\n", e.Participant.Name, e.Participant.ID, e.Participant.Privilege)
				for _, s := range e.Skills {
					if s.IsReader {
						fmt.Printf("  skill: %s (reader)\n", s.TemplateID)
					} else {
						fmt.Printf("  skill: %s\n", s.TemplateID)
					}
				}
				for role, last := range e.History {
					fmt.Printf("  %-30s last %s\n", role, last.Format("2006-01-02"))
				}
				fmt.Println()
			}

			return nil
		},
	}
}
