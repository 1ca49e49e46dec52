package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/hairizuanbinnoorazman/flashprobe/history"
	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past probe runs",
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

func openHistoryStore() (history.Store, error) {
	db, err := history.Open(cfg.GetString("history.driver"), cfg.GetString("history.dsn"))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return history.NewGormStore(db, logger.NewLogrusLogger(cfg.GetString("log.level"))), nil
}

func newHistoryListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded probe runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore()
			if err != nil {
				return err
			}

			runs, err := store.ListRuns(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}

			headers := []string{"ID", "TARGET", "SUITE", "STATUS", "PASSED", "FAILED", "SKIPPED", "STARTED AT"}
			var rows [][]string
			for _, r := range runs {
				startedAt := "-"
				if r.StartedAt != nil {
					startedAt = r.StartedAt.Format("2006-01-02 15:04:05")
				}
				rows = append(rows, []string{
					r.ID.String(),
					r.Target,
					r.Suite,
					string(r.Status),
					strconv.Itoa(r.Passed),
					strconv.Itoa(r.Failed),
					strconv.Itoa(r.Skipped),
					startedAt,
				})
			}
			printTable(headers, rows)
			printMessage(fmt.Sprintf("\nShowing %d runs", len(runs)))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset for pagination")
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one run with its step results",
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("invalid run ID: %w", err)
			}

			store, err := openHistoryStore()
			if err != nil {
				return err
			}

			run, err := store.GetRun(cmd.Context(), runID)
			if err != nil {
				return err
			}

			completedAt := "-"
			if run.CompletedAt != nil {
				completedAt = run.CompletedAt.Format("2006-01-02 15:04:05")
			}

			printMessage(fmt.Sprintf("Run:       %s", run.ID))
			printMessage(fmt.Sprintf("Target:    %s", run.Target))
			printMessage(fmt.Sprintf("Suite:     %s", run.Suite))
			printMessage(fmt.Sprintf("Status:    %s", run.Status))
			printMessage(fmt.Sprintf("Counts:    %d passed, %d failed, %d skipped", run.Passed, run.Failed, run.Skipped))
			printMessage(fmt.Sprintf("Completed: %s\n", completedAt))

			steps, err := store.ListStepResults(cmd.Context(), runID)
			if err != nil {
				return err
			}

			headers := []string{"#", "STEP", "STATUS", "DETAIL"}
			var rows [][]string
			for _, s := range steps {
				rows = append(rows, []string{
					strconv.Itoa(s.Position),
					s.Name,
					string(s.Status),
					s.Detail,
				})
			}
			printTable(headers, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Run ID (required)")
	cmd.MarkFlagRequired("id")
	return cmd
}
