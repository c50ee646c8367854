// Package internal provides the machinery behind the lessp command line tool.
//
// Key components:
//
// Engine: parses stylesheets with the parser package and reports a syntax
// error as a single Issue. It can skip ignored paths and reuse results from a
// Cache.
//
// Cache: a gob file remembering the issues of each checked file. An entry is
// dropped when the file content, its modification time, its age or one of the
// registered dependency files changes.
//
// Watcher: re-runs the engine whenever a stylesheet below a watched directory
// is written.
//
// SourceCode: the lines of a source file, used when rendering issues.
//
// Usage:
//
//	engine := internal.NewEngine(parser.WithMaxDepth(64))
//	engine.IgnorePath("vendor")
//
//	outcome, err := engine.Run("styles/site.less")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range outcome.Issues {
//	    fmt.Printf("%s: %s\n", issue.Start, issue.Message)
//	}
//
// This package is intended for internal use within the tool and should not be
// imported by external packages.
package internal
