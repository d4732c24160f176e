package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nixpig/is-container/internal/platform"
	"github.com/nixpig/is-container/pkg/container"
	"github.com/spf13/cobra"
)

// explanation is the output of the explain command.
type explanation struct {
	container.Report
	Host platform.Info `json:"host"`
}

func explainCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "explain",
		Short:   "Show the outcome of every detection probe",
		Example: "  is-container explain --format text",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			e := explanation{
				Report: opts.detector().Explain(),
				Host:   platform.Inspect(),
			}

			var err error
			switch format {
			case "json":
				err = writeJSON(cmd.OutOrStdout(), e)
			case "text":
				err = writeText(cmd.OutOrStdout(), e)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}

			if err != nil {
				return fmt.Errorf("explain: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "json", "Output format (json or text)")

	return cmd
}

func writeJSON(w io.Writer, e explanation) error {
	out, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(append(out, '\n'))

	return err
}

func writeText(w io.Writer, e explanation) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "PROBE\tPATH\tDETECTED\tERROR")
	for _, p := range e.Probes {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", p.Name, p.Path, p.Detected, p.Error)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(
		w,
		"\ncontainer:      %t\ncgroup mode:    %s\nuser namespace: %t\nkernel:         %s\n",
		e.Container,
		e.Host.CgroupMode,
		e.Host.UserNamespace,
		e.Host.Kernel,
	)

	return err
}
