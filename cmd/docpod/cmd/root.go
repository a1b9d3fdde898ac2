package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"docpod/cmd/docpod/cmd/generate"
	"docpod/cmd/docpod/cmd/migrate"
	"docpod/cmd/docpod/cmd/cmdutil"
	"docpod/cmd/docpod/cmd/serve"
	"docpod/cmd/docpod/cmd/user"
	"docpod/cmd/docpod/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docpod",
	Short: "Turn documents into two-speaker podcasts",
	Long: `docpod converts PDF and text documents into conversational podcast episodes.
- An AI model rewrites the document as a Host/Expert dialogue
- Each line is synthesized with a text-to-speech engine
- The clips are stitched into a single MP3`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(generate.Cmd)
	rootCmd.AddCommand(user.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringP(cmdutil.ConfigFlag, "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolP(cmdutil.VerboseFlag, "V", false, "verbose output")
}
