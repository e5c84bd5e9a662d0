// Package cli implements the gemini command-line harness.
package cli

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reine-ai/gemini-go/internal/config"
)

type rootOptions struct {
	key     string
	cfgPath string
	verbose bool
}

// Run executes the CLI with the given arguments.
func Run(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "gemini",
		Short:         "Chat with the Generative Language API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			setupLogging(opts.verbose)
		},
	}
	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.key, "key", "", "API key (falls back to GEMINI_KEY)")
	fs.StringVarP(&opts.cfgPath, "config", "c", "gemini.yaml", "config yaml path")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(
		newChatCmd(opts),
		newModelsCmd(opts),
	)
	return cmd
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	})
	zerolog.TimeFieldFormat = time.RFC3339
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func (o *rootOptions) apiKey() string {
	if o.key != "" {
		return o.key
	}
	return config.APIKey()
}
