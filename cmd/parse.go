package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gnolang/lessp/ast"
	"github.com/gnolang/lessp/check"
	"github.com/gnolang/lessp/formatter"
	"github.com/gnolang/lessp/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatTree = "tree"
	formatJSON = "json"
	formatYAML = "yaml"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree of a stylesheet",
	Long: `Parses a single stylesheet and prints its syntax tree.
Use "-" to read from standard input.
Example) lessp parse --format yaml site.less`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := check.New(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to initialize engine: %w", err)
		}
		return runParse(engine, args[0], parseFormat, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", formatTree, "Output format: tree, json or yaml")
}

func runParse(engine *internal.Engine, path, format string, in io.Reader, out io.Writer) error {
	switch format {
	case formatTree, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	name := path
	var (
		source []byte
		err    error
	)
	if path == "-" {
		name = check.SourceName
		source, err = io.ReadAll(in)
	} else {
		source, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("error reading %s: %w", name, err)
	}

	outcome, err := engine.RunSource(name, source)
	if err != nil {
		return err
	}
	if len(outcome.Issues) > 0 {
		fmt.Fprint(out, formatter.GenerateFormattedIssue(outcome.Issues, internal.NewSourceCode(source)))
		return ErrIssuesFound
	}

	return printStylesheet(out, outcome.Stylesheet, format)
}

func printStylesheet(out io.Writer, sheet *ast.Stylesheet, format string) error {
	switch format {
	case formatJSON:
		d, err := json.MarshalIndent(ast.Export(sheet), "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling tree to JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(d))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(ast.Export(sheet)); err != nil {
			return fmt.Errorf("error marshalling tree to YAML: %w", err)
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(out, sheet.String())
		return err
	}
}
