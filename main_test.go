package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHeadlessRecordsMatchWhenFrameFails(t *testing.T) {
	dir := t.TempDir()
	err := run(runOptions{
		headless:  true,
		outputDir: dir,
		framePath: filepath.Join(dir, "missing", "frame.png"),
		seed:      3,
		maxTicks:  50,
		matches:   1,
	})
	if err == nil {
		t.Fatal("run() = nil, want frame write error")
	}

	data, err := os.ReadFile(filepath.Join(dir, "matches.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("matches.csv has %d lines, want header plus one match:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[1], "0,3,50,false,") {
		t.Errorf("match row = %q, want match 0 seed 3 abandoned at tick 50", lines[1])
	}
}

func TestRunHeadlessPlaysMatches(t *testing.T) {
	dir := t.TempDir()
	frame := filepath.Join(dir, "frame.png")
	err := run(runOptions{
		headless:  true,
		outputDir: dir,
		framePath: frame,
		seed:      5,
		maxTicks:  20,
		matches:   3,
	})
	if err != nil {
		t.Fatalf("run() = %v, want nil", err)
	}
	if _, err := os.Stat(frame); err != nil {
		t.Errorf("frame not written: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "matches.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(strings.TrimSpace(string(data)), "\n"); got != 3 {
		t.Errorf("matches.csv has %d match rows, want 3:\n%s", got, data)
	}
}
