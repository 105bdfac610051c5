package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillsite",
	Short: "Serve the Acquire Any Skill site",
	Long: `Serves the site pages, card fragments, posts and the optional admin area.
Content comes from the embedded catalog or a YAML/TOML file or directory.`,
	// No subcommand means serve. PreRunE of serveCmd does not run when
	// delegating, so config is loaded here.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runServe(cmd.Context())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "skillsite.yaml", "Config file path")
	rootCmd.PersistentFlags().String("content", "", "Content file or directory (default: embedded catalog)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
