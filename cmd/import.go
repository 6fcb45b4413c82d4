package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wmuchiri/kaziflow/pkg/models"
)

// importFile is the intake format: a single JSON document carrying any mix
// of employers, applicants and job requests.
type importFile struct {
	Employers   []*models.Employer   `json:"employers"`
	Applicants  []*models.Applicant  `json:"applicants"`
	JobRequests []*models.JobRequest `json:"job_requests"`
}

var importCmd = &cobra.Command{
	Use:     "import <file.json>",
	Short:   "Import employers, applicants and job requests from a JSON file",
	Args:    cobra.ExactArgs(1),
	Example: `  kaziflow import intake.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var payload importFile
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("failed to parse file: %w", err)
		}

		application := mustApp(cmd)
		ctx := cmd.Context()

		for _, e := range payload.Employers {
			if err := application.Store.CreateEmployer(ctx, e); err != nil {
				return fmt.Errorf("failed to create employer %q: %w", e.Name, err)
			}
		}
		for _, a := range payload.Applicants {
			if err := application.Store.CreateApplicant(ctx, a); err != nil {
				return fmt.Errorf("failed to create applicant %q: %w", a.FullName, err)
			}
		}
		for _, j := range payload.JobRequests {
			if err := application.Store.CreateJobRequest(ctx, j); err != nil {
				return fmt.Errorf("failed to create job request %q: %w", j.Title, err)
			}
		}

		fmt.Printf("Imported %d employers, %d applicants, %d job requests\n",
			len(payload.Employers), len(payload.Applicants), len(payload.JobRequests))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
