package add

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/flarebyte/myapp/cmd/myapp/exitcode"
	"github.com/flarebyte/myapp/cmd/myapp/output"
	"github.com/flarebyte/myapp/internal/calc"
	"github.com/flarebyte/myapp/internal/logging"
)

type result struct {
	A   number `json:"a" yaml:"a"`
	B   number `json:"b" yaml:"b"`
	Sum number `json:"sum" yaml:"sum"`
}

// number is a numeric literal that encodes unquoted in JSON and YAML.
type number string

func (n number) String() string { return string(n) }

func (n number) MarshalJSON() ([]byte, error) {
	return json.Marshal(json.Number(n))
}

func (n number) MarshalYAML() (any, error) {
	tag := "!!int"
	if strings.ContainsAny(string(n), ".eE") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(n)}, nil
}

// NewCmd returns the add subcommand.
func NewCmd() *cobra.Command {
	var (
		exact  bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "add <a> <b>",
		Short: "Add two numbers",
		Long:  "Add two numbers and print the sum. Put -- before negative operands, e.g. myapp add -- -1 1.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return exitcode.Usagef("add: expected 2 operands, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !output.ValidFormat(format) {
				return exitcode.Usagef("add: unsupported format %q (expected text, json or yaml)", format)
			}
			log := logging.From(cmd.Context())
			log.Debug("adding operands", zap.String("a", args[0]), zap.String("b", args[1]), zap.Bool("exact", exact))

			var (
				res result
				err error
			)
			if exact {
				res, err = addExact(args[0], args[1])
			} else {
				res, err = addNumbers(args[0], args[1])
			}
			if err != nil {
				return exitcode.AsUsage(fmt.Errorf("add: %w", err))
			}
			log.Debug("sum computed", zap.Stringer("sum", res.Sum))
			return writeResult(cmd, format, res)
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "Use exact decimal arithmetic")
	cmd.Flags().StringVar(&format, "format", output.FormatText, "Output format: text, json or yaml")
	return cmd
}

func addNumbers(a, b string) (result, error) {
	x, err := calc.ParseOperand(a)
	if err != nil {
		return result{}, err
	}
	y, err := calc.ParseOperand(b)
	if err != nil {
		return result{}, err
	}
	return result{A: number(x.String()), B: number(y.String()), Sum: number(x.Add(y).String())}, nil
}

func addExact(a, b string) (result, error) {
	sum, err := calc.AddDecimal(a, b)
	if err != nil {
		return result{}, err
	}
	ca, err := calc.CanonicalDecimal(a)
	if err != nil {
		return result{}, err
	}
	cb, err := calc.CanonicalDecimal(b)
	if err != nil {
		return result{}, err
	}
	return result{A: number(ca), B: number(cb), Sum: number(sum)}, nil
}

func writeResult(cmd *cobra.Command, format string, res result) error {
	w := cmd.OutOrStdout()
	switch format {
	case output.FormatJSON:
		return output.EncodeJSON(w, res)
	case output.FormatYAML:
		return output.EncodeYAML(w, res)
	default:
		_, err := fmt.Fprintf(w, "%s + %s = %s\n", res.A, res.B, res.Sum)
		return err
	}
}
