package main

import (
	"path/filepath"
	"strings"
)

// outputPathForInput derives the header path for the single-object
// form: <stem>.hpp next to the input, or inside outDir when set.
func outputPathForInput(inputPath, outDir string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(inputPath)
	if outDir != "" {
		dir = outDir
	}
	return filepath.Join(dir, stem+".hpp")
}

// outputPathForPacket derives the header path for one packet of the
// array form: <PacketName>.hpp inside the output directory.
func outputPathForPacket(inputPath, outDir, packetName string) string {
	dir := filepath.Dir(inputPath)
	if outDir != "" {
		dir = outDir
	}
	return filepath.Join(dir, packetName+".hpp")
}
