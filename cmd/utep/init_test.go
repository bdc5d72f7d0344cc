package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/config"
)

func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("has correct name", func(t *testing.T) {
		t.Parallel()
		cmd := NewInitCmd()
		if cmd.Use != "init" {
			t.Errorf("expected Use to be 'init', got %q", cmd.Use)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		cmd := NewInitCmd()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag to exist")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected output shorthand to be 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultConfigFile {
			t.Errorf("expected output default to be %q, got %q", config.DefaultConfigFile, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		cmd := NewInitCmd()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag to exist")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected force shorthand to be 'f', got %q", flag.Shorthand)
		}
	})
}

func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates configuration file", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "utep.yaml")

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("expected configuration file to exist: %v", err)
		}
		for _, section := range []string{"dijet:", "pumpprobe:", "infrared:"} {
			if !strings.Contains(string(content), section) {
				t.Errorf("expected template to contain %q", section)
			}
		}
	})

	t.Run("fails when file exists", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "utep.yaml")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to write existing file: %v", err)
		}

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		err := runInitCmd(cmd, nil)
		if err == nil {
			t.Fatal("expected error when file already exists")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected 'already exists' error, got %v", err)
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "utep.yaml")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to write existing file: %v", err)
		}

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("force", "true"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("expected no error with force, got %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !strings.Contains(string(content), "dijet:") {
			t.Error("expected template content after overwrite")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "nested", "config", "utep.yaml")

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := os.Stat(outputPath); err != nil {
			t.Errorf("expected configuration file in nested directory: %v", err)
		}
	})

	t.Run("sets restrictive permissions", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("file permissions are not meaningful on Windows")
		}

		outputPath := filepath.Join(t.TempDir(), "utep.yaml")

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			t.Fatalf("failed to stat file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})

	t.Run("template loads as configuration file", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "utep.yaml")

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		file, err := config.LoadConfigFile(outputPath)
		if err != nil {
			t.Fatalf("expected template to parse as configuration: %v", err)
		}

		if file.Dijet == nil || file.Dijet.Seed == nil || *file.Dijet.Seed != 42 {
			t.Error("expected active dijet seed 42 in template")
		}
		if file.PumpProbe == nil || file.PumpProbe.Points == nil || *file.PumpProbe.Points != 1000 {
			t.Error("expected active pumpprobe points 1000 in template")
		}
		if file.Infrared == nil || file.Infrared.Points == nil || *file.Infrared.Points != 2000 {
			t.Error("expected active infrared points 2000 in template")
		}
	})
}
