// Command notegen writes Markdown notes from the annotations in a source file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-notegen"
	"github.com/goliatone/go-notegen/cmd/notegen/internal/bootstrap"
	notescmd "github.com/goliatone/go-notegen/internal/commands/notes"
	"github.com/goliatone/go-notegen/internal/notes"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

const historyLimit = 50

var moduleBuilder = bootstrap.BuildModule

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type cliFlags struct {
	tidy         bool
	generateTags bool
	configPath   string
	outputDir    string
	format       string
	frontMatter  bool
	prune        bool
	dryRun       bool
	history      bool
	logLevel     string
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *cliFlags) {
	values := &cliFlags{}
	fs := flag.NewFlagSet("notegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: notegen [flags] FILE")
		fs.PrintDefaults()
	}

	fs.BoolVar(&values.tidy, "t", false, "Shorthand for -tidy-mode")
	fs.BoolVar(&values.tidy, "tidy-mode", false, "Strip annotations from FILE after generating, keeping FILE.orig")
	fs.BoolVar(&values.generateTags, "g", false, "Shorthand for -generate-tags")
	fs.BoolVar(&values.generateTags, "generate-tags", false, "Put a \"#Language\" tag after the first prose line of each note")
	fs.StringVar(&values.configPath, "config", "", "YAML config file (default ~/.config/notegen/config.yaml)")
	fs.StringVar(&values.outputDir, "output-dir", "", "Directory notes are written to")
	fs.StringVar(&values.format, "format", "", "Output format: markdown or html")
	fs.BoolVar(&values.frontMatter, "front-matter", false, "Emit YAML front matter")
	fs.BoolVar(&values.prune, "prune", false, "Delete notes previously generated from FILE that this run did not write")
	fs.BoolVar(&values.dryRun, "dry-run", false, "Validate and report without writing")
	fs.BoolVar(&values.history, "history", false, "Print recorded history for FILE and exit")
	fs.StringVar(&values.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	return fs, values
}

// parseArgs accepts flags before and after FILE.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func overridesFrom(fs *flag.FlagSet, values *cliFlags) notegen.Overrides {
	var o notegen.Overrides
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t", "tidy-mode":
			o.Tidy = &values.tidy
		case "g", "generate-tags":
			o.GenerateTags = &values.generateTags
		case "output-dir":
			o.OutputDir = &values.outputDir
		case "format":
			o.Format = &values.format
		case "front-matter":
			o.FrontMatter = &values.frontMatter
		case "prune":
			o.Prune = &values.prune
		case "log-level":
			o.LogLevel = &values.logLevel
		}
	})
	return o
}

func run(args []string, stdout, stderr io.Writer) int {
	fs, values := newFlagSet(stderr)
	positional, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if len(positional) != 1 {
		fs.Usage()
		return exitUsage
	}
	path := positional[0]

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: values.configPath,
		Overrides:  overridesFrom(fs, values),
	})
	if err != nil {
		fmt.Fprintf(stderr, "\n%v\n", err)
		return exitUsage
	}
	defer module.Module.Close()

	ctx := context.Background()
	if values.history {
		return printHistory(ctx, module.Module, path, stdout, stderr)
	}

	cfg := module.Module.Config()
	var result *notes.GenerateResult
	set, err := notescmd.RegisterNoteCommands(nil, module.Module.Notes(), module.Module.LoggerProvider(),
		notescmd.WithGenerateObserver(func(_ context.Context, r *notes.GenerateResult) {
			result = r
		}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "\n%v\n", err)
		return exitFailed
	}
	unsubscribe := set.Subscribe(0)
	defer unsubscribe()

	cmd := notescmd.GenerateNotesCommand{
		Path:   path,
		DryRun: values.dryRun,
		Prune:  cfg.Prune,
		Tidy:   cfg.Tidy,
	}
	if err := dispatcher.Dispatch(ctx, cmd); err != nil {
		fmt.Fprintf(stderr, "\n%v\n", err)
		return exitFailed
	}

	if result != nil {
		printResult(stdout, result)
	}
	fmt.Fprintln(stdout, "\nDone!")
	return exitOK
}

func printResult(w io.Writer, result *notes.GenerateResult) {
	verb := "wrote"
	if result.DryRun {
		verb = "would write"
	}
	for _, item := range result.Written {
		fmt.Fprintf(w, "%s %s\n", verb, item.Path)
	}
	for _, path := range result.Pruned {
		fmt.Fprintf(w, "removed %s\n", path)
	}
	if result.Tidy != nil {
		fmt.Fprintf(w, "tidied %s (backup %s)\n", result.Tidy.Path, result.Tidy.Backup)
	}
}

func printHistory(ctx context.Context, module *notegen.Module, path string, stdout, stderr io.Writer) int {
	if !module.Config().Manifest.Enabled {
		fmt.Fprintln(stderr, "\nhistory requires manifest.enabled in the config file")
		return exitUsage
	}

	entries, err := module.History(ctx, path, historyLimit)
	switch {
	case errors.Is(err, notegen.ErrHistoryNotFound):
		fmt.Fprintf(stdout, "no history recorded for %s\n", path)
		return exitOK
	case err != nil:
		fmt.Fprintf(stderr, "\n%v\n", err)
		return exitFailed
	}

	for _, entry := range entries {
		fmt.Fprintf(stdout, "%s  %s  %s  %s\n",
			entry.GeneratedAt.Format(time.RFC3339),
			entry.RunID,
			entry.Title,
			entry.Path,
		)
	}
	return exitOK
}
