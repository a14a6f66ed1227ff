package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the cobra command tree for runcc. run is called
// with the resolved command-line Options once cobra has finished
// parsing; it is the caller's job to build a fleet from the result.
func NewRootCmd(run func(Options) error) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "runcc [commands...]",
		Short: "Run multiple commands concurrently in one terminal",
		Long: "runcc runs several commands concurrently, tagging each line of their\n" +
			"combined output with a label, and can tear the whole group down when\n" +
			"one of them exits according to a configurable kill policy.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Commands = args
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "path to a runcc config file (json/yaml/toml)")
	flags.IntVar(&opts.MaxLabelLength, "max-label-length", 0, "cap label width; 0 derives it from the longest command label")
	flags.StringArrayVarP(&opts.Envs, "env", "e", nil, "NAME=VALUE env var to inject into every command (repeatable)")
	flags.StringVarP(&opts.Kill, "kill", "k", "", "kill policy: None, WhenAnyExited, WhenAnySucceeded, WhenAnyFailed, or a status code")

	return cmd
}
