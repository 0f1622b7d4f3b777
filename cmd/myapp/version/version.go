package version

import (
	"fmt"
	"time"

	"github.com/flarebyte/myapp/cmd/myapp/output"
	"github.com/flarebyte/myapp/internal/buildinfo"
	"github.com/spf13/cobra"
)

// NewCmd returns the version subcommand.
func NewCmd() *cobra.Command {
	var (
		flagShort bool
		flagJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagShort || !flagJSON {
				// Exactly one line.
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "myapp %s\n", buildinfo.Summary())
				return err
			}

			// JSON goes to stdout, a human friendly line to stderr.
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "myapp version: %s\n", buildinfo.Summary())
			out := struct {
				buildinfo.Info
				Timestamp string `json:"timestamp"`
			}{
				Info:      buildinfo.Current(),
				Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			}
			return output.EncodeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&flagShort, "short", false, "Print only the version string")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")
	return cmd
}
