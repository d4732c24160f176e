package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nixpig/is-container/internal/logging"
	"github.com/nixpig/is-container/pkg/container"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrNotContainer is returned by the root command when the process is not
// running inside a container.
var ErrNotContainer = errors.New("not running in a container")

// options is the state shared by the command tree.
type options struct {
	fs     afero.Fs
	logger *slog.Logger
}

func (o *options) detector() *container.Detector {
	return container.New(o.fs, container.WithLogger(o.logger))
}

func RootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	opts := &options{
		fs:     fsys,
		logger: slog.New(slog.DiscardHandler),
	}

	cmd := &cobra.Command{
		Use:   "is-container",
		Short: "Check if the process is running inside a container.",
		Long: "Check if the process is running inside a container.\n\n" +
			"Exits 0 inside a container and 2 otherwise.",
		Example:       "  is-container && echo 'in a container'",
		Version:       "0.1.0",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logfile, _ := cmd.Flags().GetString("log")
			debug, _ := cmd.Flags().GetBool("debug")

			logger, err := logging.NewLogger(logfile, debug)
			if err != nil {
				return fmt.Errorf("initialise logging: %w", err)
			}

			if logfile != "" {
				cmd.Root().SetErr(logging.NewErrorWriter(logger))
			}

			opts.logger = logger

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inContainer := opts.detector().IsContainer()

			if printResult, _ := cmd.Flags().GetBool("print"); printResult {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), inContainer); err != nil {
					return fmt.Errorf("failed to print result to stdout: %w", err)
				}
			}

			if !inContainer {
				return ErrNotContainer
			}

			return nil
		},
	}

	cmd.AddCommand(
		explainCmd(opts),
	)

	cmd.Flags().BoolP("print", "p", false, "Print the result as true or false")

	cmd.PersistentFlags().StringP(
		"log",
		"l",
		"",
		"Destination to write logs (default is stderr)",
	)

	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	cmd.CompletionOptions.HiddenDefaultCmd = true

	return cmd
}
