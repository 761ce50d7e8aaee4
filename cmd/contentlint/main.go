package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lessonmark/lessonmark/internal/config"
	"github.com/lessonmark/lessonmark/internal/content"
	"github.com/lessonmark/lessonmark/internal/structure"
	"github.com/lessonmark/lessonmark/internal/validate"
)

// contentlint parses and lints every lesson in a content tree, checks the
// structure indices, and prints everything it found. Exit code 1 means the
// tree has hard errors (or warnings, with warningsAsErrors).
func main() {
	root := flag.String("content", envOr("CONTENT_PATH", "./content"), "content tree root")
	cfgPath := flag.String("config", "", "lint config (default <content>/.contentlint.yml)")
	workers := flag.Int("workers", 0, "parallel parses (overrides config)")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	flag.Parse()

	if *cfgPath == "" {
		*cfgPath = filepath.Join(*root, ".contentlint.yml")
	}
	lc, err := config.LoadLintConfig(*cfgPath)
	if err != nil {
		fatal("lint config: %v", err)
	}
	if *workers > 0 {
		lc.Workers = *workers
	}

	tree, err := content.NewTree(*root, 0)
	if err != nil {
		fatal("content tree: %v", err)
	}

	st, err := structure.Load(*root)
	if err != nil {
		// Broken indices block the cross-checks but the markup can still
		// be validated, which is what contributors usually need first.
		fmt.Fprintf(os.Stderr, "structure: %v\n", err)
		st = nil
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	runner := validate.NewRunner(tree, log, validate.Options{Workers: lc.Workers, Skip: lc.Skip})
	rep, err := runner.Run(context.Background(), st)
	if err != nil {
		fatal("validation: %v", err)
	}
	if st == nil {
		rep.Structure = append(rep.Structure, "structure indices could not be loaded")
		rep.ErrorCount++
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
	} else {
		printReport(rep)
	}

	if rep.HasErrors() || (lc.WarningsAsErrors && rep.WarningCount > 0) {
		os.Exit(1)
	}
}

func printReport(rep *validate.Report) {
	for _, f := range rep.Files {
		for _, e := range f.Errors {
			fmt.Printf("%s: error: %s\n", f.Path, e)
		}
		for _, p := range f.Problems {
			fmt.Printf("%s: warning: %s\n", f.Path, p.Message)
		}
	}
	for _, e := range rep.Structure {
		fmt.Printf("structure: error: %s\n", e)
	}
	fmt.Printf("%d files checked, %d errors, %d warnings\n",
		rep.FilesChecked, rep.ErrorCount, rep.WarningCount)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
