package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mindfulme/internal/chat"
	"github.com/mindfulme/internal/db"
	"github.com/mindfulme/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var initDBCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the activities and habits tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(func(gdb *gorm.DB, path string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Database '%s' initialized with 'activities' and 'habits' tables.\n", path)
			return nil
		})
	},
}

var sayCmd = &cobra.Command{
	Use:   "say <message...>",
	Short: "Send one chat message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(gdb *gorm.DB, _ string) error {
			return runSay(cmd.Context(), cmd.OutOrStdout(), gdb, strings.Join(args, " "))
		})
	},
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all activities as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(func(gdb *gorm.DB, _ string) error {
			return runExport(cmd, gdb, exportOutput)
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(initDBCmd, sayCmd, exportCmd)
}

func withDatabase(fn func(gdb *gorm.DB, path string) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gdb, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gdb)
	return fn(gdb, cfg.DatabasePath)
}

func runSay(ctx context.Context, out io.Writer, gdb *gorm.DB, message string) error {
	activities := service.NewActivityService(gdb)
	dispatcher := chat.NewDispatcher(activities, service.NewHabitService(gdb, activities))

	reply, err := dispatcher.Respond(ctx, message)
	if err != nil {
		return err
	}

	if reply.Intent == chat.IntentExport {
		fmt.Fprintln(out, "Use `mindfulme export` to download your logs.")
		return nil
	}

	// 终端不渲染 HTML，换行标签还原为换行
	fmt.Fprintln(out, strings.ReplaceAll(reply.Text, "<br>", "\n"))
	return nil
}

func runExport(cmd *cobra.Command, gdb *gorm.DB, output string) error {
	exports := service.NewExportService(gdb)

	if output == "" {
		return translateExportError(exports.WriteCSV(cmd.Context(), cmd.OutOrStdout()))
	}

	data, err := exports.CSV(cmd.Context())
	if err != nil {
		return translateExportError(err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", output)
	return nil
}

func translateExportError(err error) error {
	if errors.Is(err, service.ErrNoActivities) {
		return errors.New("no data to export")
	}
	return err
}
