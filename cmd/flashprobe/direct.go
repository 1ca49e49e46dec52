package main

import (
	"time"

	"github.com/hairizuanbinnoorazman/flashprobe/flashcard"
	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/probe"
	"github.com/hairizuanbinnoorazman/flashprobe/session"
	"github.com/spf13/cobra"
)

func newDirectCmd() *cobra.Command {
	var url, token, reportOut string
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "direct",
		Short: "Run the direct probe suite with a pre-issued access token",
		Long:  "Skips signup and login and probes deck, card, and credit endpoints directly. Use this when the auth service is unavailable or a token was obtained out of band.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("url") {
				cfg.Set("url", url)
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

			sess := session.New()
			sess.AccessToken = token

			return executeSuite(cmd, log, client, flashcard.SuiteDirect, flashcard.DirectSuite(client), sess)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Flashcard API base URL (env: FLASHPROBE_URL)")
	cmd.Flags().StringVar(&token, "token", "", "Access token to authenticate with (required)")
	cmd.MarkFlagRequired("token")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Delay between steps")
	cmd.Flags().StringVar(&reportOut, "report-out", "", "Directory to write a JSON run report to")
	return cmd
}
