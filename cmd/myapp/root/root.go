package root

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flarebyte/myapp/cmd/myapp/add"
	"github.com/flarebyte/myapp/cmd/myapp/eval"
	"github.com/flarebyte/myapp/cmd/myapp/exitcode"
	"github.com/flarebyte/myapp/cmd/myapp/version"
	"github.com/flarebyte/myapp/internal/config"
	"github.com/flarebyte/myapp/internal/greet"
	"github.com/flarebyte/myapp/internal/logging"
)

// rootOptions holds the root flags and the logger built from them.
type rootOptions struct {
	verbose    bool
	configPath string
	newLogger  func(verbose bool) (*zap.Logger, error)
	logger     *zap.Logger
}

// syncLogger flushes the logger if the command got far enough to build one.
func (o *rootOptions) syncLogger() {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

// NewRootCmd creates the root command for myapp.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{newLogger: logging.New})
}

func newRootCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "myapp",
		Short: "MyApp: greets you and adds numbers",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return exitcode.Usagef("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := o.newLogger(o.verbose)
			if err != nil {
				return err
			}
			o.logger = l
			cmd.SetContext(logging.WithLogger(cmd.Context(), l))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := greet.DefaultSettings()
			if o.configPath != "" {
				loaded, err := config.Load(o.configPath)
				if err != nil {
					return err
				}
				s = loaded
				logging.From(cmd.Context()).Debug("config loaded", zap.String("path", o.configPath))
			}
			return greet.Welcome(cmd.OutOrStdout(), s)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return exitcode.AsUsage(err)
	})

	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	cmd.Flags().StringVar(&o.configPath, "config", "", "Greeting config file (.cue, .yaml or .yml)")

	// Subcommands
	cmd.AddCommand(add.NewCmd())
	cmd.AddCommand(eval.NewCmd())
	cmd.AddCommand(version.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return execute(ctx, &rootOptions{newLogger: logging.New}, args, stdout, stderr)
}

func execute(ctx context.Context, o *rootOptions, args []string, stdout, stderr io.Writer) error {
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	cmd := newRootCmd(o)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	// cobra skips post-run hooks when RunE fails, so flush here.
	defer o.syncLogger()
	return cmd.ExecuteContext(ctx)
}
