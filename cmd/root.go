package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "viva",
	Short: "AI-powered assessment in the terminal",
	Long:  "Viva generates an assessment question with a scoring rubric for any subject and topic, collects the student's response, and grades it against the rubric.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: anthropic, openai, gemini, openrouter (overrides VIVA_LLM_PROVIDER)")
	rootCmd.PersistentFlags().String("model", "", "Model identifier (overrides the provider default)")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}
