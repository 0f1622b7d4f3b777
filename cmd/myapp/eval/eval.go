package eval

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flarebyte/myapp/cmd/myapp/exitcode"
	"github.com/flarebyte/myapp/internal/logging"
	"github.com/flarebyte/myapp/internal/script"
)

// NewCmd returns the eval subcommand.
func NewCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "eval <lua>",
		Short: "Evaluate a Lua expression with add(a, b) available",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return exitcode.Usagef("eval: expected 1 Lua expression, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.From(cmd.Context())
			start := time.Now()
			v, err := script.Eval(cmd.Context(), args[0], script.Options{Timeout: timeout})
			log.Debug("lua evaluated", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			return writeValue(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", script.DefaultTimeout, "Maximum evaluation time")
	return cmd
}

func writeValue(w io.Writer, v any) error {
	var s string
	switch x := v.(type) {
	case nil:
		s = "nil"
	case string:
		s = x
	case int64:
		s = strconv.FormatInt(x, 10)
	case float64:
		s = strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		s = strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return err
		}
		s = string(b)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}
