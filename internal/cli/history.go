package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently checked claims",
	Long: `History prints recently checked claims, newest first.

Example:
  factspark history
  factspark history --limit 25`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of claims to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()

	ctx := context.Background()
	application, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.close()

	records, err := application.pipeline.ListRecent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("list claims: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No claims have been checked yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("#%d  %s  %s\n", rec.ID, rec.SubmittedAt.Local().Format("2006-01-02 15:04"), rec.Text)
		if rec.Analysis != "" {
			fmt.Printf("    %s\n", rec.Analysis)
		}
		fmt.Println()
	}

	return nil
}
