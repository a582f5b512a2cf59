package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rplc/internal/diagfmt"
	"rplc/internal/driver"
	"rplc/internal/schema"
	"rplc/internal/source"
	"rplc/internal/spanjson"
)

var (
	genOutput    string
	genJobs      int
	genUI        string
	genDiskCache bool
)

func init() {
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output directory, or explicit .hpp path for the single-object form")
	genCmd.Flags().IntVarP(&genJobs, "jobs", "j", 0, "parallel workers for multi-packet inputs (0 = all cores)")
	genCmd.Flags().StringVar(&genUI, "ui", "auto", "interactive progress (auto|on|off)")
	genCmd.Flags().BoolVar(&genDiskCache, "disk-cache", false, "reuse headers cached from previous runs")
}

var genCmd = &cobra.Command{
	Use:   "gen <file.json>",
	Short: "Generate C++ headers from packet definitions",
	Long: `Validate a packet definition file and write one header per packet.
The single-object form writes <stem>.hpp next to the input; the array
form writes <PacketName>.hpp per packet. Generation stops at the first
packet with error diagnostics; headers for earlier packets are kept.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runGen,
}

func runGen(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	fs := source.NewFileSetWithBase(filepath.Dir(inputPath))
	id, err := fs.Load(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	// Ранний decode ради имён пакетов для прогресса.
	packets, multi, err := schema.Decode(fs.Get(id).Content)
	if err != nil {
		if _, perr := spanjson.Parse(fs.Get(id)); perr != nil {
			return fmt.Errorf("%s: %w", inputPath, perr)
		}
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	names := make([]string, len(packets))
	for i, p := range packets {
		names[i] = p.PacketName
	}

	outDir, outFile, err := resolveOutputs(inputPath, multi)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if genDiskCache {
		cache, err = driver.OpenDiskCache("rplc")
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: disk cache unavailable: %v\n", err)
			cache = nil
		}
	}

	req := driver.BatchRequest{FS: fs, File: id, Jobs: genJobs, Cache: cache}

	mode, err := readUIMode(genUI)
	if err != nil {
		return err
	}

	var outcomes []driver.PacketOutcome
	if multi && shouldUseTUI(mode) && !quiet(cmd) {
		outcomes, err = runBatchWithUI(cmd.Context(), "rplc gen "+filepath.Base(inputPath), names, req)
	} else {
		outcomes, err = driver.RunBatch(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	// Сначала печатаем все диагностики, потом пишем заголовки.
	prettyOpts := diagfmt.PrettyOpts{
		Color:     useColor(cmd),
		ShowNotes: true,
		Max:       maxDiagnostics(cmd),
	}
	for i := range outcomes {
		if outcomes[i].Bag != nil && outcomes[i].Bag.Len() > 0 {
			diagfmt.Pretty(os.Stdout, outcomes[i].Bag, fs, prettyOpts)
		}
	}

	written := 0
	for i := range outcomes {
		oc := &outcomes[i]
		if oc.Err != nil {
			// Fail-fast: заголовки после ошибочного пакета не пишем.
			return fmt.Errorf("generation aborted: %w", oc.Err)
		}

		outPath := outputPathForPacket(inputPath, outDir, oc.Name)
		if !multi {
			outPath = outFile
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outPath, []byte(oc.Header), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		written++
		if !quiet(cmd) {
			suffix := ""
			if oc.Cached {
				suffix = " (cached)"
			}
			fmt.Fprintf(os.Stdout, "wrote %s%s\n", outPath, suffix)
		}
	}
	if !quiet(cmd) && written > 1 {
		fmt.Fprintf(os.Stdout, "%d headers written\n", written)
	}
	return nil
}

// resolveOutputs decides where headers go. Precedence: --output flag,
// then [gen].out_dir from rplc.toml, then the input's directory.
func resolveOutputs(inputPath string, multi bool) (outDir, outFile string, err error) {
	out := genOutput
	if out == "" {
		manifest, ok, merr := loadProjectManifest(filepath.Dir(inputPath))
		if merr != nil {
			return "", "", merr
		}
		if ok {
			out = manifestOutDir(manifest)
		}
	}

	if out != "" && strings.HasSuffix(out, ".hpp") {
		if multi {
			return "", "", errors.New("--output must be a directory for multi-packet inputs")
		}
		return "", out, nil
	}
	return out, outputPathForInput(inputPath, out), nil
}
