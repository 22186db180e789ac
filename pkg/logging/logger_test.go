// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{" info ", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestNewFileLogging(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelDebug,
		LogDir:  dir,
		Service: "testsvc",
		Quiet:   true,
	})
	logger.Info("hello", "key", "value")
	logger.Debug("low level")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := filepath.Join(dir, "testsvc_"+time.Now().Format("2006-01-02")+".log")
	f, err := os.Open(want)
	if err != nil {
		t.Fatalf("expected log file %s: %v", want, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines []map[string]any
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		lines = append(lines, entry)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2", len(lines))
	}
	if lines[0]["msg"] != "hello" {
		t.Errorf("first line msg = %v, want hello", lines[0]["msg"])
	}
	if lines[0]["service"] != "testsvc" {
		t.Errorf("service attribute = %v, want testsvc", lines[0]["service"])
	}
	if lines[0]["key"] != "value" {
		t.Errorf("key attribute = %v, want value", lines[0]["key"])
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelWarn,
		LogDir:  dir,
		Service: "filtersvc",
		Quiet:   true,
	})
	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	path := filepath.Join(dir, "filtersvc_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	got := strings.Count(string(data), "\n")
	if got != 2 {
		t.Errorf("got %d log lines, want 2 (warn+error only)", got)
	}
}

func TestWithAttributes(t *testing.T) {
	dir := t.TempDir()

	parent := New(Config{LogDir: dir, Service: "withsvc", Quiet: true})
	child := parent.With("request_id", "abc123")
	child.Info("child entry")

	// Closing the child is a no-op; the parent owns the file.
	if err := child.Close(); err != nil {
		t.Fatalf("child Close() error = %v", err)
	}
	if err := parent.Close(); err != nil {
		t.Fatalf("parent Close() error = %v", err)
	}

	path := filepath.Join(dir, "withsvc_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data[:len(data)-1], &entry); err != nil {
		t.Fatalf("parse log line: %v", err)
	}
	if entry["request_id"] != "abc123" {
		t.Errorf("request_id = %v, want abc123", entry["request_id"])
	}
}

func TestCloseIdempotent(t *testing.T) {
	logger := New(Config{LogDir: t.TempDir(), Quiet: true})
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestMultiHandlerFanOut(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	fileA, err := os.Create(filepath.Join(dirA, "a.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer fileA.Close()
	fileB, err := os.Create(filepath.Join(dirB, "b.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer fileB.Close()

	h := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(fileA, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(fileB, &slog.HandlerOptions{Level: slog.LevelError}),
	}}

	logger := slog.New(h)
	logger.Info("info entry")
	logger.Error("error entry")

	dataA, _ := os.ReadFile(fileA.Name())
	dataB, _ := os.ReadFile(fileB.Name())
	if got := strings.Count(string(dataA), "\n"); got != 2 {
		t.Errorf("handler A received %d records, want 2", got)
	}
	if got := strings.Count(string(dataB), "\n"); got != 1 {
		t.Errorf("handler B received %d records, want 1", got)
	}

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(info) = false, want true when any destination accepts it")
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	defer logger.Close()
	if logger.Slog() == nil {
		t.Fatal("Default().Slog() returned nil")
	}
	// Must not panic.
	logger.Info("default logger works")
}
