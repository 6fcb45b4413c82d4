package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmuchiri/kaziflow/pkg/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View proposal statistics",
	Long:  "Display counts of auto-application proposals by lifecycle status",
	RunE: func(cmd *cobra.Command, args []string) error {
		application := mustApp(cmd)

		counts, err := application.Store.CountByStatus(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch statistics: %w", err)
		}

		total := 0
		for _, n := range counts {
			total += n
		}

		fmt.Println(titleStyle.Render("Proposal Statistics"))
		fmt.Printf("  %s %d\n", labelStyle.Render("Total:    "), total)
		fmt.Printf("  %s %d\n", labelStyle.Render("Pending:  "), counts[models.ProposalPending])
		fmt.Printf("  %s %d\n", labelStyle.Render("Submitted:"), counts[models.ProposalSubmitted])
		fmt.Printf("  %s %d\n", labelStyle.Render("Declined: "), counts[models.ProposalDeclined])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
