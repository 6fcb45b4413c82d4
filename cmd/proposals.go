package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wmuchiri/kaziflow/internal/reconciler"
)

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Review and process auto-application proposals",
}

var proposalsListCmd = &cobra.Command{
	Use:     "list <applicant-id>",
	Short:   "List an applicant's pending proposals, best match first",
	Args:    cobra.ExactArgs(1),
	Example: `  kaziflow proposals list 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applicantID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid applicant ID: must be a number")
		}

		application := mustApp(cmd)
		records, err := application.Store.ListPendingForApplicant(cmd.Context(), applicantID)
		if err != nil {
			return fmt.Errorf("failed to list proposals: %w", err)
		}

		if len(records) == 0 {
			fmt.Printf("No pending proposals for applicant %d\n", applicantID)
			return nil
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Pending proposals for applicant %d", applicantID)))
		for _, rec := range records {
			fmt.Printf("  #%-5d %s  job request #%d  created %s\n",
				rec.ID,
				scoreStyle.Render(fmt.Sprintf("%3d", rec.MatchScore)),
				rec.JobRequestID,
				rec.CreatedAt.Format("2006-01-02 15:04"),
			)
		}
		return nil
	},
}

var proposalsSubmitCmd = &cobra.Command{
	Use:     "submit <id>",
	Short:   "Submit a pending proposal and shortlist the applicant",
	Args:    cobra.ExactArgs(1),
	Example: `  kaziflow proposals submit 42 --notes "Confirmed by phone"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid proposal ID: must be a number")
		}
		notes, _ := cmd.Flags().GetString("notes")

		application := mustApp(cmd)
		rec, err := reconciler.New(application.Store).Submit(cmd.Context(), id, notes)
		if err != nil {
			return err
		}

		fmt.Printf("Proposal #%d submitted (applicant %d, job request %d). Shortlist entry created.\n",
			rec.ID, rec.ApplicantID, rec.JobRequestID)
		return nil
	},
}

var proposalsDeclineCmd = &cobra.Command{
	Use:     "decline <id>",
	Short:   "Decline a pending proposal",
	Args:    cobra.ExactArgs(1),
	Example: `  kaziflow proposals decline 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid proposal ID: must be a number")
		}
		notes, _ := cmd.Flags().GetString("notes")

		application := mustApp(cmd)
		rec, err := reconciler.New(application.Store).Decline(cmd.Context(), id, notes)
		if err != nil {
			return err
		}

		fmt.Printf("Proposal #%d declined.\n", rec.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(proposalsCmd)
	proposalsCmd.AddCommand(proposalsListCmd)
	proposalsCmd.AddCommand(proposalsSubmitCmd)
	proposalsCmd.AddCommand(proposalsDeclineCmd)

	proposalsSubmitCmd.Flags().String("notes", "", "notes to record with the submission")
	proposalsDeclineCmd.Flags().String("notes", "", "notes to record with the decline")
}
