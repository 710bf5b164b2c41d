package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindfulme/internal/db"
	"gorm.io/gorm/logger"
)

func TestRunSay(t *testing.T) {
	gdb, err := db.Open(filepath.Join(t.TempDir(), "cli.db"), db.WithLogLevel(logger.Silent))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close(gdb)

	var out bytes.Buffer
	if err := runSay(context.Background(), &out, gdb, "add habit read"); err != nil {
		t.Fatalf("runSay returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Habit '**Read**' added") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := runSay(context.Background(), &out, gdb, "help"); err != nil {
		t.Fatalf("runSay returned error: %v", err)
	}
	if strings.Contains(out.String(), "<br>") || strings.Count(out.String(), "\n") != 7 {
		t.Fatalf("expected help text split into lines, got %q", out.String())
	}

	out.Reset()
	if err := runSay(context.Background(), &out, gdb, "export data"); err != nil {
		t.Fatalf("runSay returned error: %v", err)
	}
	if !strings.Contains(out.String(), "mindfulme export") {
		t.Fatalf("unexpected export hint: %q", out.String())
	}
}

func TestExportCommand(t *testing.T) {
	t.Setenv("MINDFULME_CONFIG", "")
	path := filepath.Join(t.TempDir(), "export.db")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		databaseFlag = ""
	})

	rootCmd.SetArgs([]string{"--database", path, "export"})
	if err := rootCmd.Execute(); err == nil || !strings.Contains(err.Error(), "no data to export") {
		t.Fatalf("expected no data error, got %v", err)
	}

	rootCmd.SetArgs([]string{"--database", path, "say", "log", "stretching"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("say returned error: %v", err)
	}

	out.Reset()
	rootCmd.SetArgs([]string{"--database", path, "export"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "Stretching,") {
		t.Fatalf("unexpected export output: %q", out.String())
	}
}
