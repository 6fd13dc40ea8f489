package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goliatone/go-dashboarditem/pkg/prefs"
)

func main() {
	schemaName := flag.String("schema", prefs.SchemaName, "components schema holding the preference properties")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint dashboard item preference schemas. With no paths the built-in schema is checked.\n\n"); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx := context.Background()
	paths := flag.Args()
	if len(paths) == 0 {
		os.Exit(report(os.Stderr, "<builtin>", lint(ctx, prefs.SchemaDocument(), *schemaName)))
	}

	status := 0
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		if code := report(os.Stderr, path, lint(ctx, raw, *schemaName)); code != 0 {
			status = code
		}
	}
	os.Exit(status)
}

type result struct {
	issues []prefs.LintIssue
	err    error
}

func lint(ctx context.Context, raw []byte, schemaName string) result {
	issues, err := prefs.LintSchema(ctx, raw, schemaName)
	return result{issues: issues, err: err}
}

func report(out io.Writer, file string, res result) int {
	if res.err != nil {
		fmt.Fprintf(out, "%s: %v\n", file, res.err)
		return 1
	}
	for _, issue := range res.issues {
		fmt.Fprintf(out, "%s: %s\n", file, issue)
	}
	if len(res.issues) > 0 {
		return 1
	}
	return 0
}
