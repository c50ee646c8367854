package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gnolang/lessp/check"
	"github.com/gnolang/lessp/formatter"
	"github.com/gnolang/lessp/internal"
	tt "github.com/gnolang/lessp/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ignorePaths     string
	checkJSONOutput bool
	outPath         string
	fromStdin       bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check stylesheets for syntax errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !fromStdin {
			return fmt.Errorf("please provide file or directory paths")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		engine, err := check.New(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to initialize engine: %w", err)
		}

		if ignorePaths != "" {
			for _, path := range strings.Split(ignorePaths, ",") {
				engine.IgnorePath(strings.TrimSpace(path))
			}
		}

		var issues []tt.Issue
		if fromStdin {
			issues, err = checkStdin(ctx, engine, cmd.InOrStdin(), cmd.OutOrStdout())
		} else {
			issues, err = runCheck(ctx, logger, engine, args, cmd.OutOrStdout())
		}
		if err != nil {
			return err
		}
		if len(issues) > 0 {
			return ErrIssuesFound
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output issues in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().BoolVar(&fromStdin, "stdin", false, "Check a stylesheet read from standard input")
}

func runCheck(ctx context.Context, logger *zap.Logger, engine check.Engine, paths []string, out io.Writer) ([]tt.Issue, error) {
	issues, err := check.ProcessFiles(ctx, logger, engine, paths, check.ProcessFile)
	if err != nil {
		return nil, fmt.Errorf("error processing files: %w", err)
	}

	if err := printIssues(logger, out, issues, nil, checkJSONOutput, outPath); err != nil {
		return nil, err
	}
	return issues, nil
}

func checkStdin(ctx context.Context, engine check.Engine, in io.Reader, out io.Writer) ([]tt.Issue, error) {
	source, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("error reading standard input: %w", err)
	}

	issues, err := check.ProcessSources(ctx, logger, engine, [][]byte{source}, check.ProcessSource)
	if err != nil {
		return nil, err
	}

	if err := printIssues(logger, out, issues, source, checkJSONOutput, outPath); err != nil {
		return nil, err
	}
	return issues, nil
}

// printIssues writes issues grouped by file. The source of each file is read
// from disk unless source is given, which then belongs to every issue.
func printIssues(logger *zap.Logger, out io.Writer, issues []tt.Issue, source []byte, isJSON bool, jsonOutput string) error {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	if isJSON {
		return writeJSON(out, issuesByFile, jsonOutput)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	for _, filename := range sortedFiles {
		var sourceCode *internal.SourceCode
		if source != nil {
			sourceCode = internal.NewSourceCode(source)
		} else {
			var err error
			sourceCode, err = internal.ReadSourceCode(filename)
			if err != nil {
				logger.Warn("Error reading source file", zap.String("file", filename), zap.Error(err))
			}
		}
		fmt.Fprint(out, formatter.GenerateFormattedIssue(issuesByFile[filename], sourceCode))
	}
	return nil
}

func writeJSON(out io.Writer, issuesByFile map[string][]tt.Issue, jsonOutput string) error {
	d, err := json.MarshalIndent(issuesByFile, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling issues to JSON: %w", err)
	}

	if jsonOutput == "" {
		_, err = fmt.Fprintln(out, string(d))
		return err
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
