package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Rubric/internal/broker"
	"github.com/MikeSquared-Agency/Rubric/internal/config"
	"github.com/MikeSquared-Agency/Rubric/internal/grader"
)

var errLoadFailures = errors.New("one or more workbooks could not be graded")

type gradeFlags struct {
	jsonOutput bool
	legacy     bool
	workers    int
}

func newGradeCmd() *cobra.Command {
	var flags gradeFlags
	cmd := &cobra.Command{
		Use:   "grade FILE...",
		Short: "Grade workbook files and print their feedback",
		Long: `Grades each .xlsx or .json workbook and prints the feedback log.
Exits non-zero when any file cannot be loaded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("legacy-advisories") {
				cfg.Grading.LegacyAdvisories = flags.legacy
			}
			if flags.workers > 0 {
				cfg.Grading.Workers = flags.workers
			}
			return runGrade(cmd, cfg, args, flags.jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "print reports as JSON")
	cmd.Flags().BoolVar(&flags.legacy, "legacy-advisories", false, "append the legacy advisory rule sets")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "workbooks graded in parallel (default from config)")
	return cmd
}

func runGrade(cmd *cobra.Command, cfg *config.Config, paths []string, jsonOutput bool) error {
	logger := newLogger(cfg.Logging, cmd.ErrOrStderr())
	g := grader.NewGrader(graderOptions(cfg), logger)
	b := broker.New(g, nil, nil, nil, cfg, logger)

	results, err := b.GradeFiles(cmd.Context(), paths)
	if err != nil {
		return err
	}
	return printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, jsonOutput)
}

func printResults(out, errOut io.Writer, results []broker.FileResult, jsonOutput bool) error {
	failed := false
	printed := 0
	var reports []grader.Report
	for _, r := range results {
		if r.Err != nil {
			failed = true
			fmt.Fprintf(errOut, "%s: %v\n", r.Path, r.Err)
			continue
		}
		if jsonOutput {
			reports = append(reports, r.Record.Report)
			continue
		}
		if printed > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, r.Record.Report.FeedbackLog)
		printed++
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if reports == nil {
			reports = []grader.Report{}
		}
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encode reports: %w", err)
		}
	}

	if failed {
		return errLoadFailures
	}
	return nil
}
