package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hairizuanbinnoorazman/flashprobe/flashcard"
	"github.com/hairizuanbinnoorazman/flashprobe/history"
	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/probe"
	"github.com/hairizuanbinnoorazman/flashprobe/report"
	"github.com/hairizuanbinnoorazman/flashprobe/session"
	"github.com/hairizuanbinnoorazman/flashprobe/storage"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var url, authURL, email, password, name, reportOut string
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full probe suite (signup, login, decks, cards, credits)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// CLI flags take highest priority
			if cmd.Flags().Changed("url") {
				cfg.Set("url", url)
			}
			if cmd.Flags().Changed("auth-url") {
				cfg.Set("auth_url", authURL)
			}
			if cmd.Flags().Changed("email") {
				cfg.Set("email", email)
			}
			if cmd.Flags().Changed("password") {
				cfg.Set("password", password)
			}
			if cmd.Flags().Changed("name") {
				cfg.Set("name", name)
			}
			if cmd.Flags().Changed("delay") {
				cfg.Set("delay", delay.String())
			}
			if cmd.Flags().Changed("report-out") {
				cfg.Set("report.enabled", true)
				cfg.Set("report.storage", "local")
				cfg.Set("report.base_dir", reportOut)
			}

			log := logger.NewLogrusLogger(cfg.GetString("log.level"))
			client := probe.NewClient(getConfigURL(), getConfigAuthURL(), log)

			creds := flashcard.Credentials{
				Email:    cfg.GetString("email"),
				Password: cfg.GetString("password"),
				Name:     cfg.GetString("name"),
			}

			return executeSuite(cmd, log, client, flashcard.SuiteFull, flashcard.FullSuite(client, creds), session.New())
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Flashcard API base URL (env: FLASHPROBE_URL)")
	cmd.Flags().StringVar(&authURL, "auth-url", "", "Auth service base URL (env: FLASHPROBE_AUTH_URL)")
	cmd.Flags().StringVar(&email, "email", "", "Test account email")
	cmd.Flags().StringVar(&password, "password", "", "Test account password")
	cmd.Flags().StringVar(&name, "name", "", "Test account display name")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Delay between steps")
	cmd.Flags().StringVar(&reportOut, "report-out", "", "Directory to write a JSON run report to")
	return cmd
}

// executeSuite runs the given steps against the target, records the run in
// history, optionally exports a report artifact, and returns an error when
// any step failed so the process exits non-zero.
func executeSuite(cmd *cobra.Command, log logger.Logger, client *probe.Client, suite string, steps []probe.Step, sess *session.Session) error {
	ctx := cmd.Context()
	target := client.BaseURL()

	recorder := buildRecorder(ctx, log)
	run := recorder.RunStarted(ctx, target, suite)

	printMessage(fmt.Sprintf("Probing %s (%s suite, %d steps)", target, suite, len(steps)))

	reporter := report.NewConsoleReporter(os.Stdout)
	runner := probe.NewRunner(steps, cfg.GetDuration("delay"), log, reporter)
	sum, results := runner.Run(ctx, sess)

	recorder.RunFinished(ctx, run, sum, results)

	if cfg.GetBool("report.enabled") {
		if location, err := exportReport(ctx, target, suite, sum, results); err != nil {
			log.Warn(ctx, "failed to export report", map[string]interface{}{"error": err})
		} else {
			printMessage("Report exported to " + location)
		}
	}

	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d steps failed", sum.Failed, sum.Total())
	}
	return nil
}

// buildRecorder opens the history store when enabled. Failures degrade to a
// nil recorder so a broken history database never blocks a probe run.
func buildRecorder(ctx context.Context, log logger.Logger) *history.Recorder {
	if !cfg.GetBool("history.enabled") {
		return nil
	}

	driver := cfg.GetString("history.driver")
	dsn := cfg.GetString("history.dsn")
	if driver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0700); err != nil {
			log.Warn(ctx, "failed to create history directory", map[string]interface{}{"error": err})
			return nil
		}
	}

	db, err := history.Open(driver, dsn)
	if err != nil {
		log.Warn(ctx, "failed to open history database", map[string]interface{}{"error": err, "driver": driver})
		return nil
	}

	return history.NewRecorder(history.NewGormStore(db, log), log)
}

func exportReport(ctx context.Context, target, suite string, sum probe.Summary, results []probe.StepResult) (string, error) {
	store, err := storage.New(storage.Config{
		Type:    cfg.GetString("report.storage"),
		BaseDir: cfg.GetString("report.base_dir"),
		Bucket:  cfg.GetString("report.bucket"),
		Region:  cfg.GetString("report.region"),
	})
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s.json", suite, time.Now().UTC().Format("20060102-150405"))
	return report.NewReport(target, suite, sum, results).Export(ctx, store, name)
}
