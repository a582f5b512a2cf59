package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new rplc project",
	Long: `Initialize a new rplc project by creating a project manifest (rplc.toml)
and an example packet definition (packets/example.json). If [path|name] is
omitted, initializes the current directory. If a non-existing name is
provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Project name from directory basename
	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "rplc-project"
	}

	manifestPath := filepath.Join(target, "rplc.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	examplePath := filepath.Join(target, "packets", "example.json")
	createdExample := false
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(examplePath), 0o755); err != nil {
			return fmt.Errorf("failed to create packets directory: %w", err)
		}
		if err := os.WriteFile(examplePath, []byte(defaultExamplePacket()), 0o600); err != nil {
			return fmt.Errorf("failed to write example packet: %w", err)
		}
		createdExample = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized rplc project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - rplc.toml\n")
	if createdExample {
		fmt.Fprintf(os.Stdout, "  - packets/example.json\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - packets/example.json (existing)\n")
	}
	return nil
}

func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# rplc project manifest
[package]
name = "%s"

[gen]
out_dir = "include"
`, name)
}

func defaultExamplePacket() string {
	return `{
  "packet_name": "ExamplePacket",
  "command_id": "0x0001",
  "namespace": null,
  "packed": true,
  "header_guard": null,
  "fields": [
    {
      "name": "sensor_id",
      "type": "uint16_t",
      "comment": "Sensor identifier"
    },
    {
      "name": "value",
      "type": "uint32_t",
      "comment": "Raw sensor reading"
    }
  ]
}
`
}
