package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ctxsim",
	Short: "Context/target cosine similarity over word embeddings",
	Long: `ctxsim scores how well a target word or phrase fits its sentence context.

Each stimulus line marks the target with two asterisks. The context and the
target are averaged over the vectors of a whitespace-separated embedding
table and compared by cosine similarity.

Examples:
  # Score one stimulus file against two embedding tables
  ctxsim score -i stimuli.txt --embeddings-list tables.lst -o out/

  # Use a run file, overriding its parallelism
  ctxsim score --config run.yaml -p 4

  # Inspect the vocabulary around a few tokens
  ctxsim neighbors -m cc.en.300.vec -k 5 cat dog
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if verbose {
			logLevel = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})))
	},
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(neighborsCmd)
	rootCmd.AddCommand(versionCmd)
}
