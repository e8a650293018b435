package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Analyze a single claim from the command line",
	Long: `Check runs one claim through the full analysis pipeline: embed the
claim, look for a semantically similar prior claim, and either reuse
its stored analysis or generate and record a new one.

Example:
  factspark check "The Earth is flat."
  factspark check "The Great Wall is visible from space." -v`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	result, err := application.pipeline.Analyze(ctx, args[0])
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	fmt.Printf("Claim:    %s\n", result.SubmittedClaim)
	fmt.Printf("Source:   %s\n", result.Status)
	if result.SimilarClaimText != "" {
		fmt.Printf("Similar:  %s\n", result.SimilarClaimText)
	}
	fmt.Printf("\n%s\n", result.AnalysisText)
	if result.Warning != "" {
		fmt.Fprintf(os.Stderr, "\nWarning: %s\n", result.Warning)
	}

	return nil
}
