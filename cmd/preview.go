package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/viva/internal/assessment"
	"github.com/abhisek/viva/internal/llm"
	"github.com/abhisek/viva/internal/metrics"
	"github.com/abhisek/viva/internal/structured"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a generated question and rubric (no scoring)",
	Long: `Generate a question with its scoring rubric and print it.

This is a stateless developer tool. Nothing is scored or saved, so it is
useful for checking what a provider produces before a real assessment.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("subject", "", "Subject to generate for (required)")
	previewCmd.Flags().String("topic", "", "Topic within the subject (required)")
	previewCmd.Flags().Bool("json", false, "Print the raw question document")
	_ = previewCmd.MarkFlagRequired("subject")
	_ = previewCmd.MarkFlagRequired("topic")
}

func runPreview(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := resolveLLMConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	collector := metrics.New()
	provider, err := llm.NewProvider(ctx, cfg, collector)
	if err != nil {
		return fmt.Errorf("initialize provider: %w", err)
	}
	gen := structured.New(provider, collector, structured.DefaultConfig())

	qr, result, err := assessment.GenerateQuestion(ctx, gen, subject, topic)
	if err != nil {
		return fmt.Errorf("question generation failed: %w", err)
	}

	if asJSON {
		data, err := json.MarshalIndent(qr, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("Subject: %s\n", subject)
		fmt.Printf("Topic:   %s\n", topic)
		fmt.Println("\nQuestion:")
		fmt.Println("  " + qr.Question)
		fmt.Println("\nScoring rubric:")
		printRubricLevel("POOR", qr.Rubric.Poor)
		printRubricLevel("ADEQUATE", qr.Rubric.Adequate)
		printRubricLevel("EXCELLENT", qr.Rubric.Excellent)
	}

	if result.UsedFallback {
		fmt.Fprintln(os.Stderr, "warning: fallback question served (generation failed validation)")
	}
	fmt.Fprintf(os.Stderr, "attempts: %d, api calls: %d\n", result.Attempts, collector.Summary().APICalls)
	return nil
}
