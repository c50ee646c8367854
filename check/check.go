package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gnolang/lessp/internal"
	tt "github.com/gnolang/lessp/internal/types"
	"github.com/gnolang/lessp/scanner"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SourceName is the file name reported for sources that do not come from a
// file.
const SourceName = "<stdin>"

// ProgressOutput receives the progress bar drawn while a directory is
// checked.
var ProgressOutput io.Writer = os.Stderr

type Engine interface {
	Run(filename string) (*internal.Outcome, error)
	RunSource(name string, source []byte) (*internal.Outcome, error)
	IgnorePath(path string)
	IsIgnored(path string) bool
	Accepts(path string) bool
}

// New creates an engine configured by the file at configPath. The file is
// also a dependency of the cache, so editing it invalidates cached results.
func New(configPath string) (*internal.Engine, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config, configPath)
}

// NewFromConfig creates an engine from config. Changes to any of deps that
// exist invalidate the cache.
func NewFromConfig(config Config, deps ...string) (*internal.Engine, error) {
	if err := config.CheckVersion(Version); err != nil {
		return nil, err
	}

	engine := internal.NewEngine(config.ParserOptions()...)
	if len(config.Extensions) > 0 {
		engine.SetExtensions(config.Extensions...)
	}
	for _, path := range config.IgnorePaths {
		engine.IgnorePath(path)
	}

	if config.CacheDir == "" {
		return engine, nil
	}

	cache, err := internal.NewCache(config.CacheDir)
	if err != nil {
		return nil, err
	}
	var existing []string
	for _, dep := range deps {
		if _, err := os.Stat(dep); err == nil {
			existing = append(existing, dep)
		}
	}
	if err := cache.SetDependencies(existing...); err != nil {
		return nil, err
	}
	engine.SetCache(cache)
	return engine, nil
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	sources [][]byte,
	processor func(Engine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	logger = orNop(logger)

	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allIssues, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor func(Engine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	logger = orNop(logger)

	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessPath checks a file, or every accepted file below a directory using
// one worker per CPU. Issues come back in file name order. When a file
// fails the remaining files are still checked and the first error is
// returned with the issues found.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor func(Engine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	logger = orNop(logger)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !engine.Accepts(path) {
			return []tt.Issue{}, nil
		}
		issues, err := processor(engine, path)
		if err != nil {
			return []tt.Issue{}, err
		}
		return issues, nil
	}

	scanned, err := scanner.New(path).Skip(engine.IsIgnored).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}
	var files []string
	for _, file := range scanned {
		if engine.Accepts(file.Path) {
			files = append(files, file.Path)
		}
	}
	logger.Debug("Checking directory", zap.String("path", path), zap.Int("files", len(files)))

	bar := newProgressBar(len(files), path)
	results := make([][]tt.Issue, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bar.Describe(filepath.Base(file))

			issues, err := processor(engine, file)
			if err != nil {
				logger.Error("Error processing file", zap.String("file", file), zap.Error(err))
				return err
			}
			results[i] = issues
			_ = bar.Add(1)
			return nil
		})
	}

	err = g.Wait()
	_ = bar.Finish()
	if err == nil {
		err = ctx.Err()
	}

	issues := make([]tt.Issue, 0)
	for _, result := range results {
		issues = append(issues, result...)
	}
	return issues, err
}

func ProcessFile(engine Engine, filePath string) ([]tt.Issue, error) {
	outcome, err := engine.Run(filePath)
	if err != nil {
		return nil, err
	}
	return outcome.Issues, nil
}

func ProcessSource(engine Engine, source []byte) ([]tt.Issue, error) {
	outcome, err := engine.RunSource(SourceName, source)
	if err != nil {
		return nil, err
	}
	return outcome.Issues, nil
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(ProgressOutput),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
