package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/jamesprial/gameshelf/internal/config"
)

func Test_ParseLevel_Cases(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "debug", want: zapcore.DebugLevel},
		{input: "info", want: zapcore.InfoLevel},
		{input: "warn", want: zapcore.WarnLevel},
		{input: "error", want: zapcore.ErrorLevel},
		{input: "loud", want: zapcore.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func Test_New_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LogConfig{Level: "info", Format: "json"}, Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("games loaded")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug must be filtered):\n%s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if entry["msg"] != "games loaded" {
		t.Errorf("msg = %v, want %q", entry["msg"], "games loaded")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func Test_New_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LogConfig{Level: "error", Format: "console"}, Options{Verbose: true, Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("query started")
	_ = closeFn()

	if !strings.Contains(buf.String(), "query started") {
		t.Errorf("expected debug entry with Verbose, got %q", buf.String())
	}
}

func Test_New_QuietWithoutFileIsNop(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LogConfig{Level: "debug", Format: "console"}, Options{Quiet: true, Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Error("should not appear")
	_ = closeFn()

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}

func Test_New_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gameshelf.log")
	logger, closeFn, err := New(config.LogConfig{
		Level:  "info",
		Format: "json",
		File:   config.LogFileConfig{Path: path, MaxSizeMB: 1},
	}, Options{Quiet: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("written to file")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file = %q, want entry", string(data))
	}
}

func Test_New_InvalidLevel(t *testing.T) {
	logger, _, err := New(config.LogConfig{Level: "loud"}, Options{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if logger != nil {
		t.Error("expected nil logger on error")
	}
}
