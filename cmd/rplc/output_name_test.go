package main

import (
	"path/filepath"
	"testing"
)

func TestOutputPathForInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		outDir string
		want   string
	}{
		{"next to input", filepath.Join("defs", "basic.json"), "", filepath.Join("defs", "basic.hpp")},
		{"into out dir", filepath.Join("defs", "basic.json"), "include", filepath.Join("include", "basic.hpp")},
		{"no extension", "packet", "", "packet.hpp"},
		{"dotted stem", "a.b.json", "", "a.b.hpp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPathForInput(tt.input, tt.outDir); got != tt.want {
				t.Errorf("outputPathForInput(%q, %q) = %q, want %q", tt.input, tt.outDir, got, tt.want)
			}
		})
	}
}

func TestOutputPathForPacket(t *testing.T) {
	got := outputPathForPacket(filepath.Join("defs", "all.json"), "", "BasicPacket")
	want := filepath.Join("defs", "BasicPacket.hpp")
	if got != want {
		t.Errorf("outputPathForPacket = %q, want %q", got, want)
	}

	got = outputPathForPacket("all.json", "out", "BasicPacket")
	want = filepath.Join("out", "BasicPacket.hpp")
	if got != want {
		t.Errorf("outputPathForPacket = %q, want %q", got, want)
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{"ON", uiModeOn, false},
		{" off ", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("readUIMode(%q) error = %v", tt.in, err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
