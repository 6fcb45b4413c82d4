package cmd

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/wmuchiri/kaziflow/internal/matcher"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run applicant-job matching",
	Long:  "Score applicants against job requests and create auto-application proposals.",
}

var matchApplicantCmd = &cobra.Command{
	Use:     "applicant <id>",
	Short:   "Preview ranked job requests for an applicant",
	Args:    cobra.ExactArgs(1),
	Example: `  kaziflow match applicant 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid applicant ID: must be a number")
		}

		application := mustApp(cmd)
		engine := newEngine(cmd)

		matches, err := engine.MatchForApplicant(cmd.Context(), id, matcher.PolicyPrimary)
		if err != nil {
			return err
		}

		if len(matches) == 0 {
			fmt.Printf("No job requests scored at or above %d for applicant %d\n",
				application.Config.PrimaryThreshold, id)
			return nil
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Matching job requests for applicant %d", id)))
		for i, m := range matches {
			fmt.Printf("  %2d. %s  %s (%s, %s)  job request #%d\n",
				i+1,
				scoreStyle.Render(fmt.Sprintf("%3d", m.Score)),
				m.JobRequest.Title,
				m.JobRequest.Category,
				m.JobRequest.Country,
				m.JobRequest.ID,
			)
		}
		return nil
	},
}

var matchJobCmd = &cobra.Command{
	Use:   "job <id>",
	Short: "Rank applicants for a job request",
	Long:  "Rank eligible applicants for a job request. With --create, persist an auto-application proposal for every match not already recorded.",
	Args:  cobra.ExactArgs(1),
	Example: `  kaziflow match job 7
  kaziflow match job 7 --create --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid job request ID: must be a number")
		}

		create, _ := cmd.Flags().GetBool("create")
		yes, _ := cmd.Flags().GetBool("yes")

		engine := newEngine(cmd)

		matches, err := engine.RankForJob(cmd.Context(), id, matcher.PolicyPrimary, matcher.InteractiveEligibleStatuses)
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Matching applicants for job request %d", id)))
		if len(matches) == 0 {
			fmt.Println("No applicants matched.")
			return nil
		}
		for i, m := range matches {
			fmt.Printf("  %2d. %s  %s (%s, %d yrs)  applicant #%d\n",
				i+1,
				scoreStyle.Render(fmt.Sprintf("%3d", m.Score)),
				m.Applicant.FullName,
				m.Applicant.Category,
				m.Applicant.YearsExperience,
				m.Applicant.ID,
			)
		}

		if !create {
			fmt.Println("\nRun again with --create to record auto-application proposals.")
			return nil
		}

		if !yes {
			if !confirm(fmt.Sprintf("Create proposals for %d matching applicants?", len(matches))) {
				fmt.Println("Aborted.")
				return nil
			}
		}

		result, err := engine.MatchForJob(cmd.Context(), id, matcher.PolicyPrimary, matcher.InteractiveEligibleStatuses)
		if err != nil {
			return err
		}

		fmt.Printf("\nCreated %d proposals (%d already existed)\n", result.Created, result.Skipped)
		return nil
	},
}

var matchAllCmd = &cobra.Command{
	Use:     "all",
	Short:   "Run bulk matching across all open job requests",
	Long:    "Match every open job request against the bulk-eligible applicant pool and record proposals. A failing job request is reported and skipped; the rest of the batch continues.",
	Example: `  kaziflow match all --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			if !confirm("Run bulk matching across all open job requests?") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		engine := newEngine(cmd)

		result, err := engine.MatchAll(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render("Bulk matching summary"))
		fmt.Printf("  %s %d\n", labelStyle.Render("Job requests processed:"), result.Processed)
		fmt.Printf("  %s %d\n", labelStyle.Render("Proposals created:    "), result.Created)
		if len(result.Failures) > 0 {
			fmt.Printf("  %s %d\n", labelStyle.Render("Failed job requests:  "), len(result.Failures))
			for _, f := range result.Failures {
				fmt.Printf("    %s\n", failStyle.Render(fmt.Sprintf("job request #%d: %v", f.JobRequestID, f.Err)))
			}
		}
		return nil
	},
}

// newEngine builds a matching engine from the App in command context
func newEngine(cmd *cobra.Command) *matcher.Engine {
	application := mustApp(cmd)
	return matcher.NewEngine(
		application.Store,
		application.Store,
		application.Logger,
		matcher.WithThresholds(application.Config.PrimaryThreshold, application.Config.BulkThreshold),
	)
}

// confirm asks a yes/no question on the terminal
func confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.AddCommand(matchApplicantCmd)
	matchCmd.AddCommand(matchJobCmd)
	matchCmd.AddCommand(matchAllCmd)

	matchJobCmd.Flags().Bool("create", false, "persist auto-application proposals for matches")
	matchJobCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	matchAllCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}
