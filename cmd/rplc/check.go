package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rplc/internal/diagfmt"
	"rplc/internal/source"
	"rplc/internal/spanjson"
	"rplc/internal/validator"
)

var (
	checkFormat    string
	checkWithNotes bool
	checkFullPath  bool
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().BoolVar(&checkWithNotes, "with-notes", true, "show help notes under diagnostics")
	checkCmd.Flags().BoolVar(&checkFullPath, "full-path", false, "print absolute file paths")
}

var checkCmd = &cobra.Command{
	Use:   "check <file.json>",
	Short: "Validate packet definitions without generating anything",
	Long: `Validate a packet definition file (single object or array form)
and print every diagnostic found. Exits non-zero when any diagnostic
has error severity.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	bag, err := validator.ValidateAll(fs, id)
	if err != nil {
		var perr *spanjson.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s: %w", args[0], perr)
		}
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if checkFullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch checkFormat {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd),
			PathMode:  pathMode,
			ShowNotes: checkWithNotes,
			Max:       maxDiagnostics(cmd),
		})
	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              maxDiagnostics(cmd),
			IncludeNotes:     checkWithNotes,
		}
		if err := diagfmt.JSON(os.Stdout, bag, fs, opts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", checkFormat)
	}

	if bag.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", bag.ErrorCount())
	}
	if !quiet(cmd) && checkFormat == "pretty" {
		if n := bag.Len(); n > 0 {
			fmt.Fprintf(os.Stdout, "ok with %d warning(s)\n", n)
		} else {
			fmt.Fprintln(os.Stdout, "ok")
		}
	}
	return nil
}
